package domain

import (
	"context"
	"errors"
	"time"

	syncdomain "github.com/carrierdesk/carrierdesk/internal/syncstatus/domain"
	"github.com/carrierdesk/carrierdesk/pkg/db/pagination"
)

// CarrierWithSyncStatus is the dashboard row joining the shared carrier
// record with the org-scoped sync state. Sync fields are nil for carriers
// the org has never pushed.
type CarrierWithSyncStatus struct {
	CarrierRecord
	SyncStatus       *syncdomain.SyncStatus `json:"sync_status,omitempty"`
	SyncedAt         *time.Time             `json:"synced_at,omitempty"`
	ExternalObjectID *string                `json:"external_object_id,omitempty"`
	Platform         *string                `json:"platform,omitempty"`
}

type ListRequest struct {
	pagination.Pagination
}

type ListResponse struct {
	Carriers []CarrierWithSyncStatus `json:"carriers"`
}

type Service interface {
	// BulkUpsert is the core write path: upserts every successfully
	// looked-up carrier and creates or refreshes its sync-status
	// placeholder for the acting org, in one transaction.
	BulkUpsert(ctx context.Context, lookups []Lookup) ([]CarrierRecord, error)
	GetByUSDOT(ctx context.Context, usdot string) (CarrierRecord, error)
	ListByOrg(ctx context.Context, req ListRequest) (ListResponse, error)
}

var (
	ErrInvalidIdentity = errors.New("invalid_identity")
	ErrInvalidUSDOT    = errors.New("invalid_usdot")
	ErrNotFound        = errors.New("not_found")
)
