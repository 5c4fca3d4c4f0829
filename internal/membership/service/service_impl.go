package service

import (
	"context"
	"strings"

	"github.com/carrierdesk/carrierdesk/internal/identity"
	"github.com/carrierdesk/carrierdesk/internal/membership/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("membership.service"),
		repo: p.Repo,
	}
}

func (s *Service) IsManager(ctx context.Context) (bool, error) {
	userID, orgID, err := actor(ctx)
	if err != nil {
		return false, err
	}

	m, err := s.repo.FindMembership(ctx, s.db, userID, orgID)
	if err != nil {
		return false, err
	}
	if m == nil || !m.IsActive {
		return false, nil
	}
	return m.Role == domain.RoleManager, nil
}

func (s *Service) EnsureMembership(ctx context.Context, req domain.EnsureRequest) (domain.UserOrgMembership, error) {
	userID, orgID, err := actor(ctx)
	if err != nil {
		return domain.UserOrgMembership{}, err
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RoleManager {
		return domain.UserOrgMembership{}, domain.ErrInvalidRole
	}

	var membership domain.UserOrgMembership
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := domain.AppUser{
			UserID:    userID,
			UserEmail: strings.TrimSpace(req.UserEmail),
			IsActive:  true,
		}
		if v := strings.TrimSpace(req.Name); v != "" {
			user.Name = &v
		}
		if v := strings.TrimSpace(req.FirstName); v != "" {
			user.FirstName = &v
		}
		if v := strings.TrimSpace(req.LastName); v != "" {
			user.LastName = &v
		}
		if err := s.repo.UpsertUser(ctx, tx, &user); err != nil {
			return err
		}

		orgName := strings.TrimSpace(req.OrgName)
		if orgName == "" {
			orgName = orgID
		}
		org := domain.AppOrg{OrgID: orgID, OrgName: orgName, IsActive: true}
		if err := s.repo.UpsertOrg(ctx, tx, &org); err != nil {
			return err
		}

		// Existing memberships keep their role; the login callback never
		// promotes or demotes.
		m := domain.UserOrgMembership{
			UserID:   userID,
			OrgID:    orgID,
			Role:     role,
			IsActive: true,
		}
		if err := s.repo.InsertMembership(ctx, tx, &m); err != nil {
			return err
		}

		existing, err := s.repo.FindMembership(ctx, tx, userID, orgID)
		if err != nil {
			return err
		}
		membership = *existing
		return nil
	})
	if txErr != nil {
		return domain.UserOrgMembership{}, txErr
	}

	s.log.Info("membership ensured",
		zap.String("user_id", userID),
		zap.String("org_id", orgID),
		zap.String("role", membership.Role),
	)
	return membership, nil
}

func actor(ctx context.Context) (string, string, error) {
	userID, ok := identity.UserIDFromContext(ctx)
	if !ok {
		return "", "", domain.ErrInvalidIdentity
	}
	orgID, ok := identity.OrgIDFromContext(ctx)
	if !ok {
		return "", "", domain.ErrInvalidIdentity
	}
	return userID, orgID, nil
}
