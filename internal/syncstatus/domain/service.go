package domain

import (
	"context"
	"errors"
	"time"

	"github.com/carrierdesk/carrierdesk/pkg/db/pagination"
)

type UpsertRequest struct {
	USDOT            string
	Status           SyncStatus
	SyncedAt         *time.Time
	ExternalObjectID *string
	Platform         string
}

type ListRequest struct {
	pagination.Pagination
	Status      string
	USDOTFilter string
}

type ListResponse struct {
	Statuses []CrmSyncStatus `json:"statuses"`
}

type Service interface {
	// Upsert overwrites the current state for (usdot, org) or inserts a new
	// row. Last write wins; there is no optimistic lock. This is the entry
	// point for out-of-band corrections; the push path writes through the
	// repository inside its own transaction and does not go through here.
	Upsert(ctx context.Context, req UpsertRequest) (CrmSyncStatus, error)
	GetByUSDOT(ctx context.Context, usdot string) (CrmSyncStatus, error)
	ListByOrg(ctx context.Context, req ListRequest) (ListResponse, error)
	// GetForUSDOTs batch-loads current state; usdots with no row are simply
	// absent from the map (never synced).
	GetForUSDOTs(ctx context.Context, usdots []string) (map[string]CrmSyncStatus, error)
	Delete(ctx context.Context, usdot string) (bool, error)
}

var (
	ErrInvalidIdentity = errors.New("invalid_identity")
	ErrInvalidUSDOT    = errors.New("invalid_usdot")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrNotFound        = errors.New("not_found")
)
