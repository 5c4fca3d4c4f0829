package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// Insert is the only write: pure append, no upsert logic.
	Insert(ctx context.Context, db *gorm.DB, record *CrmSyncHistory) error
	QueryByUSDOT(ctx context.Context, db *gorm.DB, usdot, orgID string, limit int) ([]CrmSyncHistory, error)
	QueryByOrg(ctx context.Context, db *gorm.DB, orgID, userID string, limit int) ([]CrmSyncHistory, error)
	Stats(ctx context.Context, db *gorm.DB, orgID string) (Stats, error)
}
