package repository

import (
	"context"
	"errors"

	"github.com/carrierdesk/carrierdesk/internal/carrier/domain"
	"github.com/carrierdesk/carrierdesk/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByUSDOT(ctx context.Context, db *gorm.DB, usdot string) (*domain.CarrierRecord, error) {
	var record domain.CarrierRecord
	err := db.WithContext(ctx).
		Where("usdot = ?", usdot).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repo) FindByUSDOTs(ctx context.Context, db *gorm.DB, usdots []string) ([]domain.CarrierRecord, error) {
	if len(usdots) == 0 {
		return nil, nil
	}
	var records []domain.CarrierRecord
	err := db.WithContext(ctx).
		Where("usdot IN ?", usdots).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListUSDOTsByOrg resolves the org's carrier set through its sync-status rows,
// newest first. The dashboard join depends on every persisted carrier having a
// status row for the discovering org.
func (r *repo) ListUSDOTsByOrg(ctx context.Context, db *gorm.DB, orgID string, page pagination.Pagination) ([]string, error) {
	var usdots []string
	stmt := db.WithContext(ctx).
		Table("crm_sync_status").
		Select("usdot").
		Where("org_id = ?", orgID).
		Order("created_at desc, usdot desc")
	err := page.Apply(stmt).Scan(&usdots).Error
	if err != nil {
		return nil, err
	}
	return usdots, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.CarrierRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) Overwrite(ctx context.Context, db *gorm.DB, record *domain.CarrierRecord) error {
	return db.WithContext(ctx).
		Model(&domain.CarrierRecord{}).
		Where("usdot = ?", record.USDOT).
		Select("*").
		Omit("usdot", "created_at").
		Updates(record).Error
}
