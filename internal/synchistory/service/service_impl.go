package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/carrierdesk/carrierdesk/internal/identity"
	"github.com/carrierdesk/carrierdesk/internal/synchistory/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("synchistory.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Append(ctx context.Context, req domain.AppendRequest) (domain.CrmSyncHistory, error) {
	userID, orgID, err := actor(ctx)
	if err != nil {
		return domain.CrmSyncHistory{}, err
	}

	usdot := strings.TrimSpace(req.USDOT)
	if usdot == "" {
		return domain.CrmSyncHistory{}, domain.ErrInvalidUSDOT
	}
	if !req.Status.Valid() {
		return domain.CrmSyncHistory{}, domain.ErrInvalidStatus
	}

	objectType := strings.TrimSpace(req.ObjectType)
	if objectType == "" {
		objectType = "account"
	}
	timestamp := time.Now().UTC()
	if req.SyncTimestamp != nil {
		timestamp = *req.SyncTimestamp
	}
	var detail *string
	if d := strings.TrimSpace(req.Detail); d != "" {
		detail = &d
	}

	record := domain.CrmSyncHistory{
		ID:               s.genID.Generate(),
		USDOT:            usdot,
		OrgID:            orgID,
		UserID:           userID,
		Status:           req.Status,
		ObjectType:       objectType,
		ExternalObjectID: req.ExternalObjectID,
		Platform:         req.Platform,
		Detail:           detail,
		SyncTimestamp:    timestamp,
	}
	if err := s.repo.Insert(ctx, s.db, &record); err != nil {
		return domain.CrmSyncHistory{}, err
	}
	return record, nil
}

func (s *Service) QueryByUSDOT(ctx context.Context, req domain.QueryByUSDOTRequest) ([]domain.CrmSyncHistory, error) {
	_, orgID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	usdot := strings.TrimSpace(req.USDOT)
	if usdot == "" {
		return nil, domain.ErrInvalidUSDOT
	}

	limit := req.Limit
	if limit <= 0 {
		limit = domain.DefaultUSDOTQueryLimit
	}
	scope := orgID
	if req.AllOrgs {
		scope = ""
	}
	return s.repo.QueryByUSDOT(ctx, s.db, usdot, scope, limit)
}

func (s *Service) QueryByOrg(ctx context.Context, req domain.QueryByOrgRequest) ([]domain.CrmSyncHistory, error) {
	_, orgID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = domain.DefaultOrgQueryLimit
	}
	return s.repo.QueryByOrg(ctx, s.db, orgID, strings.TrimSpace(req.UserID), limit)
}

func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	_, orgID, err := actor(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return s.repo.Stats(ctx, s.db, orgID)
}

func actor(ctx context.Context) (userID, orgID string, err error) {
	userID, okUser := identity.UserIDFromContext(ctx)
	orgID, okOrg := identity.OrgIDFromContext(ctx)
	if !okUser || !okOrg {
		return "", "", domain.ErrInvalidIdentity
	}
	return userID, orgID, nil
}
