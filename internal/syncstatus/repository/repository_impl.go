package repository

import (
	"context"
	"errors"
	"time"

	"github.com/carrierdesk/carrierdesk/internal/syncstatus/domain"
	"github.com/carrierdesk/carrierdesk/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByKey(ctx context.Context, db *gorm.DB, usdot, orgID string) (*domain.CrmSyncStatus, error) {
	var record domain.CrmSyncStatus
	err := db.WithContext(ctx).
		Where("usdot = ? AND org_id = ?", usdot, orgID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repo) FindForUSDOTs(ctx context.Context, db *gorm.DB, orgID string, usdots []string) ([]domain.CrmSyncStatus, error) {
	if len(usdots) == 0 {
		return nil, nil
	}
	var records []domain.CrmSyncStatus
	err := db.WithContext(ctx).
		Where("org_id = ? AND usdot IN ?", orgID, usdots).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) ListByOrg(ctx context.Context, db *gorm.DB, orgID string, filter domain.ListFilter, page pagination.Pagination) ([]domain.CrmSyncStatus, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.CrmSyncStatus{}).
		Where("org_id = ?", orgID)
	if filter.Status != "" {
		stmt = stmt.Where("sync_status = ?", filter.Status)
	}
	if filter.USDOTFilter != "" {
		stmt = stmt.Where("usdot LIKE ?", "%"+filter.USDOTFilter+"%")
	}

	var records []domain.CrmSyncStatus
	err := page.Apply(stmt).
		Order("created_at desc, usdot desc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.CrmSyncStatus) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, record *domain.CrmSyncStatus) error {
	return db.WithContext(ctx).
		Model(&domain.CrmSyncStatus{}).
		Where("usdot = ? AND org_id = ?", record.USDOT, record.OrgID).
		Updates(map[string]interface{}{
			"user_id":            record.UserID,
			"sync_status":        record.Status,
			"synced_at":          record.SyncedAt,
			"external_object_id": record.ExternalObjectID,
			"platform":           record.Platform,
			"updated_at":         record.UpdatedAt,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, usdot, orgID string) (bool, error) {
	result := db.WithContext(ctx).
		Where("usdot = ? AND org_id = ?", usdot, orgID).
		Delete(&domain.CrmSyncStatus{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repo) GeneratePending(ctx context.Context, db *gorm.DB, usdots []string, userID, orgID string) (domain.PendingBatch, error) {
	var batch domain.PendingBatch
	now := time.Now().UTC()

	for _, usdot := range usdots {
		existing, err := r.FindByKey(ctx, db, usdot, orgID)
		if err != nil {
			return domain.PendingBatch{}, err
		}

		if existing != nil {
			// Refresh the actor only; status is left untouched.
			existing.UserID = userID
			existing.UpdatedAt = now
			batch.Existing = append(batch.Existing, existing)
			continue
		}

		batch.New = append(batch.New, &domain.CrmSyncStatus{
			USDOT:     usdot,
			OrgID:     orgID,
			UserID:    userID,
			Status:    domain.StatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return batch, nil
}

func (r *repo) SaveBatch(ctx context.Context, db *gorm.DB, batch domain.PendingBatch) error {
	for _, record := range batch.Existing {
		err := db.WithContext(ctx).
			Model(&domain.CrmSyncStatus{}).
			Where("usdot = ? AND org_id = ?", record.USDOT, record.OrgID).
			Updates(map[string]interface{}{
				"user_id":    record.UserID,
				"updated_at": record.UpdatedAt,
			}).Error
		if err != nil {
			return err
		}
	}
	if len(batch.New) > 0 {
		if err := db.WithContext(ctx).Create(batch.New).Error; err != nil {
			return err
		}
	}
	return nil
}
