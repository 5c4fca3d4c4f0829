package service

import (
	"context"
	"strings"
	"time"

	"github.com/carrierdesk/carrierdesk/internal/carrier/domain"
	"github.com/carrierdesk/carrierdesk/internal/identity"
	syncdomain "github.com/carrierdesk/carrierdesk/internal/syncstatus/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Repo     domain.Repository
	SyncRepo syncdomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	repo     domain.Repository
	syncRepo syncdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("carrier.service"),
		repo:     p.Repo,
		syncRepo: p.SyncRepo,
	}
}

// BulkUpsert persists one batch of registry lookup results. Lookups that
// failed are dropped up front, so every carrier written here always gets a
// sync-status placeholder for the acting org in the same transaction. Carrier
// attributes are global: a re-lookup by any org overwrites what every other
// org sees.
func (s *Service) BulkUpsert(ctx context.Context, lookups []domain.Lookup) ([]domain.CarrierRecord, error) {
	userID, orgID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	usable := make([]domain.Lookup, 0, len(lookups))
	for _, lookup := range lookups {
		if !lookup.Success {
			s.log.Warn("dropping failed lookup from batch",
				zap.String("usdot", lookup.Record.USDOT),
				zap.String("org_id", orgID),
			)
			continue
		}
		if strings.TrimSpace(lookup.Record.USDOT) == "" {
			return nil, domain.ErrInvalidUSDOT
		}
		usable = append(usable, lookup)
	}
	if len(usable) == 0 {
		s.log.Warn("no valid carrier records to save", zap.String("org_id", orgID))
		return nil, nil
	}

	now := time.Now().UTC()
	saved := make([]domain.CarrierRecord, 0, len(usable))

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		usdots := make([]string, 0, len(usable))

		for _, lookup := range usable {
			record := lookup.Record
			record.UpdatedAt = now

			existing, err := s.repo.FindByUSDOT(ctx, tx, record.USDOT)
			if err != nil {
				return err
			}

			if existing != nil {
				record.CreatedAt = existing.CreatedAt
				if err := s.repo.Overwrite(ctx, tx, &record); err != nil {
					return err
				}
			} else {
				record.CreatedAt = now
				if err := s.repo.Insert(ctx, tx, &record); err != nil {
					return err
				}
			}

			saved = append(saved, record)
			usdots = append(usdots, record.USDOT)
		}

		batch, err := s.syncRepo.GeneratePending(ctx, tx, usdots, userID, orgID)
		if err != nil {
			return err
		}
		return s.syncRepo.SaveBatch(ctx, tx, batch)
	})
	if err != nil {
		s.log.Error("bulk carrier upsert failed",
			zap.String("org_id", orgID),
			zap.Int("batch_size", len(usable)),
			zap.Error(err),
		)
		return nil, err
	}

	s.log.Info("bulk carrier upsert complete",
		zap.String("org_id", orgID),
		zap.Int("saved", len(saved)),
	)
	return saved, nil
}

func (s *Service) GetByUSDOT(ctx context.Context, usdot string) (domain.CarrierRecord, error) {
	usdot = strings.TrimSpace(usdot)
	if usdot == "" {
		return domain.CarrierRecord{}, domain.ErrInvalidUSDOT
	}

	record, err := s.repo.FindByUSDOT(ctx, s.db, usdot)
	if err != nil {
		return domain.CarrierRecord{}, err
	}
	if record == nil {
		return domain.CarrierRecord{}, domain.ErrNotFound
	}
	return *record, nil
}

func (s *Service) ListByOrg(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	_, orgID, err := actor(ctx)
	if err != nil {
		return domain.ListResponse{}, err
	}

	usdots, err := s.repo.ListUSDOTsByOrg(ctx, s.db, orgID, req.Pagination)
	if err != nil {
		return domain.ListResponse{}, err
	}
	if len(usdots) == 0 {
		return domain.ListResponse{Carriers: []domain.CarrierWithSyncStatus{}}, nil
	}

	records, err := s.repo.FindByUSDOTs(ctx, s.db, usdots)
	if err != nil {
		return domain.ListResponse{}, err
	}
	statuses, err := s.syncRepo.FindForUSDOTs(ctx, s.db, orgID, usdots)
	if err != nil {
		return domain.ListResponse{}, err
	}

	statusByUSDOT := make(map[string]syncdomain.CrmSyncStatus, len(statuses))
	for _, status := range statuses {
		statusByUSDOT[status.USDOT] = status
	}
	recordByUSDOT := make(map[string]domain.CarrierRecord, len(records))
	for _, record := range records {
		recordByUSDOT[record.USDOT] = record
	}

	// Preserve the sync-status ordering (newest first).
	carriers := make([]domain.CarrierWithSyncStatus, 0, len(usdots))
	for _, usdot := range usdots {
		record, ok := recordByUSDOT[usdot]
		if !ok {
			continue
		}
		row := domain.CarrierWithSyncStatus{CarrierRecord: record}
		if status, ok := statusByUSDOT[usdot]; ok {
			st := status.Status
			row.SyncStatus = &st
			row.SyncedAt = status.SyncedAt
			row.ExternalObjectID = status.ExternalObjectID
			row.Platform = status.Platform
		}
		carriers = append(carriers, row)
	}

	return domain.ListResponse{Carriers: carriers}, nil
}

func actor(ctx context.Context) (userID, orgID string, err error) {
	userID, okUser := identity.UserIDFromContext(ctx)
	orgID, okOrg := identity.OrgIDFromContext(ctx)
	if !okUser || !okOrg {
		return "", "", domain.ErrInvalidIdentity
	}
	return userID, orgID, nil
}
