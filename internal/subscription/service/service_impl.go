package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/carrierdesk/carrierdesk/internal/identity"
	"github.com/carrierdesk/carrierdesk/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Processor domain.BillingProcessor
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	processor domain.BillingProcessor
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("subscription.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		processor: p.Processor,
	}
}

func (s *Service) GetMapping(ctx context.Context) (*domain.SubscriptionMapping, error) {
	userID, orgID, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByUserOrg(ctx, s.db, userID, orgID)
}

func (s *Service) GetDetail(ctx context.Context) (*domain.SubscriptionDetail, error) {
	mapping, err := s.GetMapping(ctx)
	if err != nil {
		return nil, err
	}
	if mapping == nil {
		return nil, domain.ErrNoSubscription
	}

	detail := &domain.SubscriptionDetail{Mapping: *mapping}
	external, err := s.processor.GetSubscription(ctx, mapping.ExternalSubscriptionID)
	if err != nil {
		s.log.Warn("billing processor lookup failed",
			zap.String("subscription_id", mapping.ExternalSubscriptionID),
			zap.Error(err),
		)
		return detail, nil
	}
	detail.External = external
	return detail, nil
}

func (s *Service) Subscribe(ctx context.Context, req domain.SubscribeRequest) (domain.SubscriptionMapping, error) {
	userID, orgID, err := actor(ctx)
	if err != nil {
		return domain.SubscriptionMapping{}, err
	}

	email := strings.TrimSpace(req.CustomerEmail)
	planID := strings.TrimSpace(req.PlanID)
	if email == "" || planID == "" {
		return domain.SubscriptionMapping{}, domain.ErrInvalidRequest
	}

	active, err := s.processor.FindActiveSubscription(ctx, email)
	if err != nil {
		s.log.Error("billing processor unreachable", zap.Error(err))
		return domain.SubscriptionMapping{}, domain.ErrBillingUnavailable
	}
	if active != nil {
		return domain.SubscriptionMapping{}, domain.ErrActiveSubscription
	}

	// A mapping left behind by a cancelled subscription is stale; replace it.
	existing, err := s.repo.FindByUserOrg(ctx, s.db, userID, orgID)
	if err != nil {
		return domain.SubscriptionMapping{}, err
	}
	if existing != nil {
		s.log.Info("replacing stale subscription mapping",
			zap.String("user_id", userID),
			zap.String("org_id", orgID),
			zap.String("external_subscription_id", existing.ExternalSubscriptionID),
		)
		if err := s.repo.Delete(ctx, s.db, int64(existing.ID)); err != nil {
			return domain.SubscriptionMapping{}, err
		}
	}

	created, err := s.processor.CreateSubscription(ctx, email, planID)
	if err != nil {
		s.log.Error("subscription creation failed",
			zap.String("plan_id", planID),
			zap.Error(err),
		)
		return domain.SubscriptionMapping{}, domain.ErrBillingUnavailable
	}

	mapping := domain.SubscriptionMapping{
		ID:                     s.genID.Generate(),
		UserID:                 userID,
		OrgID:                  orgID,
		ExternalCustomerID:     created.CustomerID,
		ExternalSubscriptionID: created.SubscriptionID,
		CreatedAt:              time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, &mapping); err != nil {
		return domain.SubscriptionMapping{}, err
	}

	s.log.Info("subscription created",
		zap.String("user_id", userID),
		zap.String("org_id", orgID),
		zap.String("external_subscription_id", created.SubscriptionID),
	)
	return mapping, nil
}

func (s *Service) Cancel(ctx context.Context) error {
	mapping, err := s.GetMapping(ctx)
	if err != nil {
		return err
	}
	if mapping == nil {
		return domain.ErrNoSubscription
	}

	if err := s.processor.CancelSubscription(ctx, mapping.ExternalSubscriptionID); err != nil {
		s.log.Error("subscription cancel failed",
			zap.String("external_subscription_id", mapping.ExternalSubscriptionID),
			zap.Error(err),
		)
		return domain.ErrBillingUnavailable
	}

	if err := s.repo.Delete(ctx, s.db, int64(mapping.ID)); err != nil {
		return err
	}

	s.log.Info("subscription cancelled",
		zap.String("user_id", mapping.UserID),
		zap.String("org_id", mapping.OrgID),
		zap.String("external_subscription_id", mapping.ExternalSubscriptionID),
	)
	return nil
}

func (s *Service) ReportUsage(ctx context.Context, metricName string, quantity float64) error {
	mapping, err := s.GetMapping(ctx)
	if err != nil {
		return err
	}
	if mapping == nil {
		return domain.ErrNoSubscription
	}

	if err := s.processor.ReportUsage(ctx, mapping.ExternalSubscriptionID, metricName, quantity); err != nil {
		s.log.Error("usage report failed",
			zap.String("external_subscription_id", mapping.ExternalSubscriptionID),
			zap.String("metric", metricName),
			zap.Error(err),
		)
		return domain.ErrBillingUnavailable
	}
	return nil
}

func (s *Service) GetUsage(ctx context.Context) (*domain.UsageSummary, error) {
	mapping, err := s.GetMapping(ctx)
	if err != nil {
		return nil, err
	}
	if mapping == nil {
		return nil, domain.ErrNoSubscription
	}

	usage, err := s.processor.GetUsage(ctx, mapping.ExternalSubscriptionID)
	if err != nil {
		s.log.Error("usage query failed",
			zap.String("external_subscription_id", mapping.ExternalSubscriptionID),
			zap.Error(err),
		)
		return nil, domain.ErrBillingUnavailable
	}
	return usage, nil
}

func (s *Service) DeleteByExternalID(ctx context.Context, subscriptionID string) (bool, error) {
	subscriptionID = strings.TrimSpace(subscriptionID)
	if subscriptionID == "" {
		return false, domain.ErrInvalidRequest
	}

	mapping, err := s.repo.FindByExternalSubscriptionID(ctx, s.db, subscriptionID)
	if err != nil {
		return false, err
	}
	if mapping == nil {
		return false, nil
	}

	if err := s.repo.Delete(ctx, s.db, int64(mapping.ID)); err != nil {
		return false, err
	}

	s.log.Info("subscription mapping removed by webhook",
		zap.String("external_subscription_id", subscriptionID),
	)
	return true, nil
}

func actor(ctx context.Context) (string, string, error) {
	userID, ok := identity.UserIDFromContext(ctx)
	if !ok {
		return "", "", domain.ErrInvalidIdentity
	}
	orgID, ok := identity.OrgIDFromContext(ctx)
	if !ok {
		return "", "", domain.ErrInvalidIdentity
	}
	return userID, orgID, nil
}
