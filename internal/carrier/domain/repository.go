package domain

import (
	"context"

	"github.com/carrierdesk/carrierdesk/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	FindByUSDOT(ctx context.Context, db *gorm.DB, usdot string) (*CarrierRecord, error)
	FindByUSDOTs(ctx context.Context, db *gorm.DB, usdots []string) ([]CarrierRecord, error)
	ListUSDOTsByOrg(ctx context.Context, db *gorm.DB, orgID string, page pagination.Pagination) ([]string, error)
	Insert(ctx context.Context, db *gorm.DB, record *CarrierRecord) error
	// Overwrite replaces every registry-derived field of an existing record,
	// keeping the original created_at.
	Overwrite(ctx context.Context, db *gorm.DB, record *CarrierRecord) error
}
