package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/carrierdesk/carrierdesk/internal/config"
	"github.com/carrierdesk/carrierdesk/internal/fieldmapping/domain"
	"github.com/carrierdesk/carrierdesk/internal/identity"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var validFieldTypes = map[string]struct{}{
	"text":    {},
	"number":  {},
	"date":    {},
	"boolean": {},
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Defaults *config.FieldMappingDefaultsHolder
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	defaults *config.FieldMappingDefaultsHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("fieldmapping.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		defaults: p.Defaults,
	}
}

func (s *Service) GetActiveMappings(ctx context.Context) ([]domain.FieldMapping, error) {
	orgID, ok := identity.OrgIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidIdentity
	}
	return s.repo.FindActive(ctx, s.db, orgID)
}

// GetMappingDict never fails; CRM payload construction falls back to an empty
// dict when mappings cannot be loaded.
func (s *Service) GetMappingDict(ctx context.Context) map[string]string {
	dict := make(map[string]string)

	orgID, ok := identity.OrgIDFromContext(ctx)
	if !ok {
		s.log.Warn("mapping dict requested without org identity")
		return dict
	}

	mappings, err := s.repo.FindActive(ctx, s.db, orgID)
	if err != nil {
		s.log.Error("failed to load field mappings",
			zap.String("org_id", orgID),
			zap.Error(err),
		)
		return dict
	}

	for _, m := range mappings {
		dict[m.CarrierField] = m.ExternalField
	}
	return dict
}

func (s *Service) SaveMapping(ctx context.Context, req domain.SaveRequest) (domain.FieldMapping, error) {
	orgID, ok := identity.OrgIDFromContext(ctx)
	if !ok {
		return domain.FieldMapping{}, domain.ErrInvalidIdentity
	}

	carrierField := strings.TrimSpace(req.CarrierField)
	externalField := strings.TrimSpace(req.ExternalField)
	if carrierField == "" || externalField == "" {
		return domain.FieldMapping{}, domain.ErrInvalidField
	}
	if !domain.KnownCarrierField(carrierField) {
		return domain.FieldMapping{}, domain.ErrUnknownField
	}

	fieldType := strings.TrimSpace(req.FieldType)
	if fieldType == "" {
		fieldType = "text"
	}
	if _, ok := validFieldTypes[fieldType]; !ok {
		return domain.FieldMapping{}, domain.ErrInvalidType
	}

	now := time.Now().UTC()

	existing, err := s.repo.FindByKey(ctx, s.db, orgID, carrierField)
	if err != nil {
		return domain.FieldMapping{}, err
	}

	if existing != nil {
		existing.ExternalField = externalField
		existing.FieldType = fieldType
		existing.IsActive = true
		existing.UpdatedAt = now
		if err := s.repo.Update(ctx, s.db, existing); err != nil {
			return domain.FieldMapping{}, err
		}
		s.log.Info("field mapping updated",
			zap.String("org_id", orgID),
			zap.String("carrier_field", carrierField),
			zap.String("external_field", externalField),
		)
		return *existing, nil
	}

	mapping := domain.FieldMapping{
		ID:            s.genID.Generate(),
		OrgID:         orgID,
		CarrierField:  carrierField,
		ExternalField: externalField,
		FieldType:     fieldType,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Insert(ctx, s.db, &mapping); err != nil {
		return domain.FieldMapping{}, err
	}

	s.log.Info("field mapping created",
		zap.String("org_id", orgID),
		zap.String("carrier_field", carrierField),
		zap.String("external_field", externalField),
	)
	return mapping, nil
}

func (s *Service) DeactivateMapping(ctx context.Context, carrierField string) (bool, error) {
	orgID, ok := identity.OrgIDFromContext(ctx)
	if !ok {
		return false, domain.ErrInvalidIdentity
	}

	carrierField = strings.TrimSpace(carrierField)
	if carrierField == "" {
		return false, domain.ErrInvalidField
	}

	existing, err := s.repo.FindByKey(ctx, s.db, orgID, carrierField)
	if err != nil {
		return false, err
	}
	if existing == nil || !existing.IsActive {
		return false, nil
	}

	existing.IsActive = false
	existing.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, existing); err != nil {
		return false, err
	}

	s.log.Info("field mapping deactivated",
		zap.String("org_id", orgID),
		zap.String("carrier_field", carrierField),
	)
	return true, nil
}

func (s *Service) CreateDefaults(ctx context.Context) ([]domain.FieldMapping, error) {
	if _, ok := identity.OrgIDFromContext(ctx); !ok {
		return nil, domain.ErrInvalidIdentity
	}

	defaults := s.defaults.Get()
	created := make([]domain.FieldMapping, 0, len(defaults))
	for _, d := range defaults {
		mapping, err := s.SaveMapping(ctx, domain.SaveRequest{
			CarrierField:  d.CarrierField,
			ExternalField: d.ExternalField,
			FieldType:     d.FieldType,
		})
		if err != nil {
			return nil, err
		}
		created = append(created, mapping)
	}
	return created, nil
}

func (s *Service) Reset(ctx context.Context) ([]domain.FieldMapping, error) {
	orgID, ok := identity.OrgIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidIdentity
	}

	if err := s.repo.DeactivateAll(ctx, s.db, orgID); err != nil {
		return nil, err
	}

	s.log.Info("field mappings reset", zap.String("org_id", orgID))
	return s.CreateDefaults(ctx)
}
