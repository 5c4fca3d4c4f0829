package domain

import "time"

// SyncStatus is the per-attempt outcome recorded for a carrier/org pair.
type SyncStatus string

const (
	StatusPending SyncStatus = "PENDING"
	StatusSuccess SyncStatus = "SUCCESS"
	StatusFailed  SyncStatus = "FAILED"
)

// Valid reports whether s is one of the known statuses.
func (s SyncStatus) Valid() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed:
		return true
	default:
		return false
	}
}

// CrmSyncStatus is the current-state (SCD type 1) sync record, one row per
// (usdot, org) pair. created_at never changes after insert; every write bumps
// updated_at. Concurrent writers race and the last commit wins; there is no
// version column.
type CrmSyncStatus struct {
	USDOT  string `gorm:"column:usdot;primaryKey" json:"usdot"`
	OrgID  string `gorm:"column:org_id;primaryKey" json:"org_id"`
	UserID string `gorm:"column:user_id;not null" json:"user_id"`

	Status           SyncStatus `gorm:"column:sync_status;not null" json:"sync_status"`
	SyncedAt         *time.Time `gorm:"column:synced_at" json:"synced_at,omitempty"`
	ExternalObjectID *string    `gorm:"column:external_object_id" json:"external_object_id,omitempty"`
	Platform         *string    `gorm:"column:platform" json:"platform,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (CrmSyncStatus) TableName() string {
	return "crm_sync_status"
}

// PendingBatch is the result of generating placeholder rows for a usdot set:
// existing rows mutated in memory (actor and updated_at only) plus new
// unpersisted PENDING rows. Callers persist both sets as one batch.
type PendingBatch struct {
	Existing []*CrmSyncStatus
	New      []*CrmSyncStatus
}

// Records returns the batch in input order equivalence (existing first).
func (b PendingBatch) Records() []*CrmSyncStatus {
	out := make([]*CrmSyncStatus, 0, len(b.Existing)+len(b.New))
	out = append(out, b.Existing...)
	out = append(out, b.New...)
	return out
}

func (b PendingBatch) Len() int {
	return len(b.Existing) + len(b.New)
}
