package repository

import (
	"context"

	"github.com/carrierdesk/carrierdesk/internal/synchistory/domain"
	syncdomain "github.com/carrierdesk/carrierdesk/internal/syncstatus/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.CrmSyncHistory) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) QueryByUSDOT(ctx context.Context, db *gorm.DB, usdot, orgID string, limit int) ([]domain.CrmSyncHistory, error) {
	stmt := db.WithContext(ctx).
		Where("usdot = ?", usdot)
	if orgID != "" {
		stmt = stmt.Where("org_id = ?", orgID)
	}

	var records []domain.CrmSyncHistory
	err := stmt.
		Order("sync_timestamp desc, id desc").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) QueryByOrg(ctx context.Context, db *gorm.DB, orgID, userID string, limit int) ([]domain.CrmSyncHistory, error) {
	stmt := db.WithContext(ctx).
		Where("org_id = ?", orgID)
	if userID != "" {
		stmt = stmt.Where("user_id = ?", userID)
	}

	var records []domain.CrmSyncHistory
	err := stmt.
		Order("sync_timestamp desc, id desc").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) Stats(ctx context.Context, db *gorm.DB, orgID string) (domain.Stats, error) {
	var stats domain.Stats
	err := db.WithContext(ctx).
		Model(&domain.CrmSyncHistory{}).
		Select(
			"COUNT(*) AS total_attempts, "+
				"COUNT(CASE WHEN sync_status = ? THEN 1 END) AS success_count, "+
				"COUNT(CASE WHEN sync_status = ? THEN 1 END) AS failed_count, "+
				"MAX(sync_timestamp) AS last_attempt_at, "+
				"COUNT(DISTINCT usdot) AS unique_carriers",
			syncdomain.StatusSuccess,
			syncdomain.StatusFailed,
		).
		Where("org_id = ?", orgID).
		Scan(&stats).Error
	if err != nil {
		return domain.Stats{}, err
	}
	return stats, nil
}
