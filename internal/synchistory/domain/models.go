package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	syncdomain "github.com/carrierdesk/carrierdesk/internal/syncstatus/domain"
)

// CrmSyncHistory is one immutable row per CRM push attempt. Rows are never
// updated or deleted; deleting a carrier's current sync status leaves its
// history untouched.
type CrmSyncHistory struct {
	ID     snowflake.ID `gorm:"column:id;primaryKey" json:"id"`
	USDOT  string       `gorm:"column:usdot;not null;index" json:"usdot"`
	OrgID  string       `gorm:"column:org_id;not null;index" json:"org_id"`
	UserID string       `gorm:"column:user_id;not null" json:"user_id"`

	Status           syncdomain.SyncStatus `gorm:"column:sync_status;not null" json:"sync_status"`
	ObjectType       string                `gorm:"column:object_type;not null;default:account" json:"object_type"`
	ExternalObjectID *string               `gorm:"column:external_object_id" json:"external_object_id,omitempty"`
	Platform         string                `gorm:"column:platform;not null" json:"platform"`
	Detail           *string               `gorm:"column:detail" json:"detail,omitempty"`

	SyncTimestamp time.Time `gorm:"column:sync_timestamp;not null;default:CURRENT_TIMESTAMP" json:"sync_timestamp"`
}

func (CrmSyncHistory) TableName() string {
	return "crm_sync_history"
}

// Stats aggregates an org's push attempts for the dashboard summary.
type Stats struct {
	TotalAttempts  int64      `json:"total_attempts"`
	SuccessCount   int64      `json:"success_count"`
	FailedCount    int64      `json:"failed_count"`
	LastAttemptAt  *time.Time `json:"last_attempt_at,omitempty"`
	UniqueCarriers int64      `json:"unique_carriers"`
}
