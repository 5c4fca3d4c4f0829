package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	carrierdomain "github.com/carrierdesk/carrierdesk/internal/carrier/domain"
	"github.com/carrierdesk/carrierdesk/internal/config"
	"github.com/carrierdesk/carrierdesk/internal/crmpush/domain"
	fieldmappingdomain "github.com/carrierdesk/carrierdesk/internal/fieldmapping/domain"
	"github.com/carrierdesk/carrierdesk/internal/identity"
	historydomain "github.com/carrierdesk/carrierdesk/internal/synchistory/domain"
	syncdomain "github.com/carrierdesk/carrierdesk/internal/syncstatus/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Cfg         config.Config
	GenID       *snowflake.Node
	Client      domain.CRMClient
	CarrierRepo carrierdomain.Repository
	StatusRepo  syncdomain.Repository
	HistoryRepo historydomain.Repository
	Mappings    fieldmappingdomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	cfg         config.Config
	genID       *snowflake.Node
	client      domain.CRMClient
	carrierRepo carrierdomain.Repository
	statusRepo  syncdomain.Repository
	historyRepo historydomain.Repository
	mappings    fieldmappingdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("crmpush.service"),
		cfg:         p.Cfg,
		genID:       p.GenID,
		client:      p.Client,
		carrierRepo: p.CarrierRepo,
		statusRepo:  p.StatusRepo,
		historyRepo: p.HistoryRepo,
		mappings:    p.Mappings,
	}
}

func (s *Service) Push(ctx context.Context, usdots []string) (domain.PushResponse, error) {
	userID, orgID, err := actor(ctx)
	if err != nil {
		return domain.PushResponse{}, err
	}

	cleaned := make([]string, 0, len(usdots))
	seen := make(map[string]struct{}, len(usdots))
	for _, usdot := range usdots {
		usdot = strings.TrimSpace(usdot)
		if usdot == "" {
			continue
		}
		if _, dup := seen[usdot]; dup {
			continue
		}
		seen[usdot] = struct{}{}
		cleaned = append(cleaned, usdot)
	}
	if len(cleaned) == 0 {
		return domain.PushResponse{}, domain.ErrEmptyBatch
	}

	records, err := s.carrierRepo.FindByUSDOTs(ctx, s.db, cleaned)
	if err != nil {
		return domain.PushResponse{}, err
	}
	if len(records) == 0 {
		return domain.PushResponse{}, domain.ErrNoCarriers
	}

	dict := s.mappings.GetMappingDict(ctx)
	payloads := make([]domain.AccountPayload, 0, len(records))
	for _, record := range records {
		payloads = append(payloads, buildPayload(record, dict))
	}

	results, err := s.client.PushAccounts(ctx, payloads)
	if err != nil {
		// A transport failure fails every item; each still gets its
		// outcome recorded so the dashboard reflects the attempt.
		s.log.Error("crm push failed", zap.Int("batch", len(payloads)), zap.Error(err))
		results = make([]domain.PushResult, 0, len(payloads))
		for _, payload := range payloads {
			results = append(results, domain.PushResult{
				USDOT:  payload.USDOT,
				Detail: "crm unreachable: " + err.Error(),
			})
		}
	}

	resp := domain.PushResponse{Requested: len(payloads)}
	for _, result := range results {
		if err := s.recordOutcome(ctx, result, userID, orgID); err != nil {
			s.log.Error("failed to record push outcome",
				zap.String("usdot", result.USDOT),
				zap.String("org_id", orgID),
				zap.Error(err),
			)
			result.Success = false
			if result.Detail == "" {
				result.Detail = "failed to record outcome"
			}
		}
		if result.Success {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
		resp.Results = append(resp.Results, result)
	}

	s.log.Info("crm push processed",
		zap.String("org_id", orgID),
		zap.Int("requested", resp.Requested),
		zap.Int("succeeded", resp.Succeeded),
		zap.Int("failed", resp.Failed),
	)
	return resp, nil
}

// recordOutcome appends the history row and upserts the current status in one
// transaction, so the two can never diverge for a recorded attempt.
func (s *Service) recordOutcome(ctx context.Context, result domain.PushResult, userID, orgID string) error {
	now := time.Now().UTC()
	status := syncdomain.StatusFailed
	var externalID *string
	var detail *string
	if result.Success {
		status = syncdomain.StatusSuccess
		id := result.ExternalObjectID
		externalID = &id
		d := "synced to " + s.cfg.CRMPlatform + " object " + id
		detail = &d
	} else if result.Detail != "" {
		d := result.Detail
		detail = &d
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		history := historydomain.CrmSyncHistory{
			ID:               s.genID.Generate(),
			USDOT:            result.USDOT,
			OrgID:            orgID,
			UserID:           userID,
			Status:           status,
			ObjectType:       s.cfg.CRMObjectType,
			ExternalObjectID: externalID,
			Platform:         s.cfg.CRMPlatform,
			Detail:           detail,
			SyncTimestamp:    now,
		}
		if err := s.historyRepo.Insert(ctx, tx, &history); err != nil {
			return err
		}

		platform := s.cfg.CRMPlatform
		existing, err := s.statusRepo.FindByKey(ctx, tx, result.USDOT, orgID)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.UserID = userID
			existing.Status = status
			existing.Platform = &platform
			// synced_at tracks the last attempt, successful or not.
			existing.SyncedAt = &now
			existing.UpdatedAt = now
			if result.Success {
				existing.ExternalObjectID = externalID
			} else {
				// A failed push invalidates any previously recorded
				// external object id.
				existing.ExternalObjectID = nil
			}
			return s.statusRepo.Update(ctx, tx, existing)
		}

		record := syncdomain.CrmSyncStatus{
			USDOT:     result.USDOT,
			OrgID:     orgID,
			UserID:    userID,
			Status:    status,
			Platform:  &platform,
			SyncedAt:  &now,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if result.Success {
			record.ExternalObjectID = externalID
		}
		return s.statusRepo.Insert(ctx, tx, &record)
	})
}

func buildPayload(record carrierdomain.CarrierRecord, dict map[string]string) domain.AccountPayload {
	payload := domain.AccountPayload{
		USDOT:  record.USDOT,
		Fields: make(map[string]interface{}, len(dict)),
	}

	// json tags on CarrierRecord are the canonical carrier field names, so a
	// marshal round-trip gives attribute access by name. omitempty drops
	// unset attributes.
	raw, err := json.Marshal(record)
	if err != nil {
		return payload
	}
	var attrs map[string]interface{}
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return payload
	}

	for carrierField, externalField := range dict {
		if value, ok := attrs[carrierField]; ok {
			payload.Fields[externalField] = value
		}
	}
	return payload
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
