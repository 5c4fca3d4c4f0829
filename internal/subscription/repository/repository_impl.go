package repository

import (
	"context"
	"errors"

	"github.com/carrierdesk/carrierdesk/internal/subscription/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByUserOrg(ctx context.Context, db *gorm.DB, userID, orgID string) (*domain.SubscriptionMapping, error) {
	var mapping domain.SubscriptionMapping
	err := db.WithContext(ctx).
		Where("user_id = ? AND org_id = ?", userID, orgID).
		First(&mapping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mapping, nil
}

func (r *repo) FindByExternalSubscriptionID(ctx context.Context, db *gorm.DB, subscriptionID string) (*domain.SubscriptionMapping, error) {
	var mapping domain.SubscriptionMapping
	err := db.WithContext(ctx).
		Where("external_subscription_id = ?", subscriptionID).
		First(&mapping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mapping, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, mapping *domain.SubscriptionMapping) error {
	return db.WithContext(ctx).Create(mapping).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.SubscriptionMapping{}).Error
}
