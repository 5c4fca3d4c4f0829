package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	FindMembership(ctx context.Context, db *gorm.DB, userID, orgID string) (*UserOrgMembership, error)
	UpsertUser(ctx context.Context, db *gorm.DB, user *AppUser) error
	UpsertOrg(ctx context.Context, db *gorm.DB, org *AppOrg) error
	InsertMembership(ctx context.Context, db *gorm.DB, m *UserOrgMembership) error
}

// EnsureRequest carries the identity-provider profile delivered on login.
type EnsureRequest struct {
	UserEmail string
	Name      string
	FirstName string
	LastName  string
	OrgName   string
	Role      string
}

type Service interface {
	// IsManager reports whether the acting user holds the manager role in
	// the acting org. Missing or inactive memberships are not managers.
	IsManager(ctx context.Context) (bool, error)
	// EnsureMembership creates the user, org, and membership rows on first
	// login and is a no-op when they already exist.
	EnsureMembership(ctx context.Context, req EnsureRequest) (UserOrgMembership, error)
}

var (
	ErrInvalidIdentity = errors.New("invalid_identity")
	ErrInvalidRole     = errors.New("invalid_role")
)
