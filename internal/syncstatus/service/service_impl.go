package service

import (
	"context"
	"strings"
	"time"

	"github.com/carrierdesk/carrierdesk/internal/identity"
	"github.com/carrierdesk/carrierdesk/internal/syncstatus/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("syncstatus.service"),
		repo: p.Repo,
	}
}

func (s *Service) Upsert(ctx context.Context, req domain.UpsertRequest) (domain.CrmSyncStatus, error) {
	userID, orgID, err := actor(ctx)
	if err != nil {
		return domain.CrmSyncStatus{}, err
	}

	usdot := strings.TrimSpace(req.USDOT)
	if usdot == "" {
		return domain.CrmSyncStatus{}, domain.ErrInvalidUSDOT
	}
	if !req.Status.Valid() {
		return domain.CrmSyncStatus{}, domain.ErrInvalidStatus
	}

	now := time.Now().UTC()
	var platform *string
	if p := strings.TrimSpace(req.Platform); p != "" {
		platform = &p
	}

	existing, err := s.repo.FindByKey(ctx, s.db, usdot, orgID)
	if err != nil {
		return domain.CrmSyncStatus{}, err
	}

	if existing != nil {
		existing.UserID = userID
		existing.Status = req.Status
		existing.SyncedAt = req.SyncedAt
		existing.ExternalObjectID = req.ExternalObjectID
		existing.Platform = platform
		existing.UpdatedAt = now
		if err := s.repo.Update(ctx, s.db, existing); err != nil {
			return domain.CrmSyncStatus{}, err
		}
		s.log.Info("sync status updated",
			zap.String("usdot", usdot),
			zap.String("org_id", orgID),
			zap.String("status", string(req.Status)),
		)
		return *existing, nil
	}

	record := domain.CrmSyncStatus{
		USDOT:            usdot,
		OrgID:            orgID,
		UserID:           userID,
		Status:           req.Status,
		SyncedAt:         req.SyncedAt,
		ExternalObjectID: req.ExternalObjectID,
		Platform:         platform,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Insert(ctx, s.db, &record); err != nil {
		return domain.CrmSyncStatus{}, err
	}
	s.log.Info("sync status created",
		zap.String("usdot", usdot),
		zap.String("org_id", orgID),
		zap.String("status", string(req.Status)),
	)
	return record, nil
}

func (s *Service) GetByUSDOT(ctx context.Context, usdot string) (domain.CrmSyncStatus, error) {
	_, orgID, err := actor(ctx)
	if err != nil {
		return domain.CrmSyncStatus{}, err
	}

	usdot = strings.TrimSpace(usdot)
	if usdot == "" {
		return domain.CrmSyncStatus{}, domain.ErrInvalidUSDOT
	}

	record, err := s.repo.FindByKey(ctx, s.db, usdot, orgID)
	if err != nil {
		return domain.CrmSyncStatus{}, err
	}
	if record == nil {
		return domain.CrmSyncStatus{}, domain.ErrNotFound
	}
	return *record, nil
}

func (s *Service) ListByOrg(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	_, orgID, err := actor(ctx)
	if err != nil {
		return domain.ListResponse{}, err
	}

	filter := domain.ListFilter{
		USDOTFilter: strings.TrimSpace(req.USDOTFilter),
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		parsed := domain.SyncStatus(strings.ToUpper(status))
		if !parsed.Valid() {
			return domain.ListResponse{}, domain.ErrInvalidStatus
		}
		filter.Status = parsed
	}

	records, err := s.repo.ListByOrg(ctx, s.db, orgID, filter, req.Pagination)
	if err != nil {
		return domain.ListResponse{}, err
	}
	return domain.ListResponse{Statuses: records}, nil
}

func (s *Service) GetForUSDOTs(ctx context.Context, usdots []string) (map[string]domain.CrmSyncStatus, error) {
	_, orgID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.FindForUSDOTs(ctx, s.db, orgID, usdots)
	if err != nil {
		return nil, err
	}

	out := make(map[string]domain.CrmSyncStatus, len(records))
	for _, record := range records {
		out[record.USDOT] = record
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, usdot string) (bool, error) {
	_, orgID, err := actor(ctx)
	if err != nil {
		return false, err
	}

	usdot = strings.TrimSpace(usdot)
	if usdot == "" {
		return false, domain.ErrInvalidUSDOT
	}

	deleted, err := s.repo.Delete(ctx, s.db, usdot, orgID)
	if err != nil {
		return false, err
	}
	if !deleted {
		s.log.Warn("no sync status to delete",
			zap.String("usdot", usdot),
			zap.String("org_id", orgID),
		)
	}
	return deleted, nil
}

func actor(ctx context.Context) (userID, orgID string, err error) {
	userID, okUser := identity.UserIDFromContext(ctx)
	orgID, okOrg := identity.OrgIDFromContext(ctx)
	if !okUser || !okOrg {
		return "", "", domain.ErrInvalidIdentity
	}
	return userID, orgID, nil
}
