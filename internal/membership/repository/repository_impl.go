package repository

import (
	"context"
	"errors"

	"github.com/carrierdesk/carrierdesk/internal/membership/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindMembership(ctx context.Context, db *gorm.DB, userID, orgID string) (*domain.UserOrgMembership, error) {
	var m domain.UserOrgMembership
	err := db.WithContext(ctx).
		Where("user_id = ? AND org_id = ?", userID, orgID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *repo) UpsertUser(ctx context.Context, db *gorm.DB, user *domain.AppUser) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_email", "name", "first_name", "last_name"}),
		}).
		Create(user).Error
}

func (r *repo) UpsertOrg(ctx context.Context, db *gorm.DB, org *domain.AppOrg) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "org_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"org_name"}),
		}).
		Create(org).Error
}

func (r *repo) InsertMembership(ctx context.Context, db *gorm.DB, m *domain.UserOrgMembership) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(m).Error
}
