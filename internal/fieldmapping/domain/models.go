package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// FieldMapping translates one carrier attribute to an external CRM field API
// name for an organization. Deactivation is a soft delete; at most one row
// exists per (org, carrier_field) and it is reactivated on re-save.
type FieldMapping struct {
	ID            snowflake.ID `gorm:"column:id;primaryKey" json:"id"`
	OrgID         string       `gorm:"column:org_id;not null;uniqueIndex:idx_field_mappings_org_field" json:"org_id"`
	CarrierField  string       `gorm:"column:carrier_field;not null;uniqueIndex:idx_field_mappings_org_field" json:"carrier_field"`
	ExternalField string       `gorm:"column:external_field;not null" json:"external_field"`
	FieldType     string       `gorm:"column:field_type;not null;default:text" json:"field_type"`
	IsActive      bool         `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt     time.Time    `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (FieldMapping) TableName() string {
	return "field_mappings"
}

// CatalogueEntry describes one mappable carrier attribute for the settings UI.
type CatalogueEntry struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// StandardExternalField is a commonly used destination field on the CRM side.
type StandardExternalField struct {
	APIName string `json:"api_name"`
	Label   string `json:"label"`
}
