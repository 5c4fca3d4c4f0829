package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	FindActive(ctx context.Context, db *gorm.DB, orgID string) ([]FieldMapping, error)
	// FindByKey returns the row regardless of is_active, or nil.
	FindByKey(ctx context.Context, db *gorm.DB, orgID, carrierField string) (*FieldMapping, error)
	Insert(ctx context.Context, db *gorm.DB, mapping *FieldMapping) error
	Update(ctx context.Context, db *gorm.DB, mapping *FieldMapping) error
	DeactivateAll(ctx context.Context, db *gorm.DB, orgID string) error
}

type SaveRequest struct {
	CarrierField  string
	ExternalField string
	FieldType     string
}

type Service interface {
	GetActiveMappings(ctx context.Context) ([]FieldMapping, error)
	// GetMappingDict returns carrier_field -> external_field for payload
	// construction. It fails open: any error is logged and an empty map is
	// returned so payload construction can proceed.
	GetMappingDict(ctx context.Context) map[string]string
	SaveMapping(ctx context.Context, req SaveRequest) (FieldMapping, error)
	DeactivateMapping(ctx context.Context, carrierField string) (bool, error)
	CreateDefaults(ctx context.Context) ([]FieldMapping, error)
	// Reset deactivates every mapping for the org and reseeds the defaults.
	Reset(ctx context.Context) ([]FieldMapping, error)
}

var (
	ErrInvalidIdentity = errors.New("invalid_identity")
	ErrInvalidField    = errors.New("invalid_field")
	ErrUnknownField    = errors.New("unknown_carrier_field")
	ErrInvalidType     = errors.New("invalid_field_type")
)
