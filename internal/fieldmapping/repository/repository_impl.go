package repository

import (
	"context"
	"errors"
	"time"

	"github.com/carrierdesk/carrierdesk/internal/fieldmapping/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindActive(ctx context.Context, db *gorm.DB, orgID string) ([]domain.FieldMapping, error) {
	var mappings []domain.FieldMapping
	err := db.WithContext(ctx).
		Where("org_id = ? AND is_active = ?", orgID, true).
		Order("carrier_field asc").
		Find(&mappings).Error
	if err != nil {
		return nil, err
	}
	return mappings, nil
}

func (r *repo) FindByKey(ctx context.Context, db *gorm.DB, orgID, carrierField string) (*domain.FieldMapping, error) {
	var mapping domain.FieldMapping
	err := db.WithContext(ctx).
		Where("org_id = ? AND carrier_field = ?", orgID, carrierField).
		First(&mapping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mapping, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, mapping *domain.FieldMapping) error {
	return db.WithContext(ctx).Create(mapping).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, mapping *domain.FieldMapping) error {
	return db.WithContext(ctx).
		Model(&domain.FieldMapping{}).
		Where("id = ?", mapping.ID).
		Updates(map[string]interface{}{
			"external_field": mapping.ExternalField,
			"field_type":     mapping.FieldType,
			"is_active":      mapping.IsActive,
			"updated_at":     mapping.UpdatedAt,
		}).Error
}

func (r *repo) DeactivateAll(ctx context.Context, db *gorm.DB, orgID string) error {
	return db.WithContext(ctx).
		Model(&domain.FieldMapping{}).
		Where("org_id = ? AND is_active = ?", orgID, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now().UTC(),
		}).Error
}
