package domain

import (
	"context"

	"github.com/carrierdesk/carrierdesk/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	Status      SyncStatus
	USDOTFilter string
}

type Repository interface {
	FindByKey(ctx context.Context, db *gorm.DB, usdot, orgID string) (*CrmSyncStatus, error)
	FindForUSDOTs(ctx context.Context, db *gorm.DB, orgID string, usdots []string) ([]CrmSyncStatus, error)
	ListByOrg(ctx context.Context, db *gorm.DB, orgID string, filter ListFilter, page pagination.Pagination) ([]CrmSyncStatus, error)
	Insert(ctx context.Context, db *gorm.DB, record *CrmSyncStatus) error
	// Update overwrites the mutable fields of an existing row. created_at is
	// never touched.
	Update(ctx context.Context, db *gorm.DB, record *CrmSyncStatus) error
	Delete(ctx context.Context, db *gorm.DB, usdot, orgID string) (bool, error)

	// GeneratePending builds the placeholder batch for a usdot set: rows that
	// already exist get their actor and updated_at refreshed in memory, the
	// rest become new unpersisted PENDING rows. SaveBatch persists the result.
	GeneratePending(ctx context.Context, db *gorm.DB, usdots []string, userID, orgID string) (PendingBatch, error)
	SaveBatch(ctx context.Context, db *gorm.DB, batch PendingBatch) error
}
