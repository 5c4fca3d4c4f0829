package domain

import (
	"context"
	"errors"
	"time"

	syncdomain "github.com/carrierdesk/carrierdesk/internal/syncstatus/domain"
)

type AppendRequest struct {
	USDOT            string
	Status           syncdomain.SyncStatus
	ObjectType       string
	ExternalObjectID *string
	Platform         string
	Detail           string
	SyncTimestamp    *time.Time
}

type QueryByUSDOTRequest struct {
	USDOT string
	// AllOrgs widens the query beyond the acting org.
	AllOrgs bool
	Limit   int
}

type QueryByOrgRequest struct {
	UserID string
	Limit  int
}

type Service interface {
	Append(ctx context.Context, req AppendRequest) (CrmSyncHistory, error)
	QueryByUSDOT(ctx context.Context, req QueryByUSDOTRequest) ([]CrmSyncHistory, error)
	QueryByOrg(ctx context.Context, req QueryByOrgRequest) ([]CrmSyncHistory, error)
	Stats(ctx context.Context) (Stats, error)
}

const (
	DefaultUSDOTQueryLimit = 100
	DefaultOrgQueryLimit   = 1000
)

var (
	ErrInvalidIdentity = errors.New("invalid_identity")
	ErrInvalidUSDOT    = errors.New("invalid_usdot")
	ErrInvalidStatus   = errors.New("invalid_status")
)
