package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	FindByUserOrg(ctx context.Context, db *gorm.DB, userID, orgID string) (*SubscriptionMapping, error)
	FindByExternalSubscriptionID(ctx context.Context, db *gorm.DB, subscriptionID string) (*SubscriptionMapping, error)
	Insert(ctx context.Context, db *gorm.DB, mapping *SubscriptionMapping) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

type SubscribeRequest struct {
	CustomerEmail string
	PlanID        string
}

// SubscriptionDetail joins the local mapping with the processor's live view.
type SubscriptionDetail struct {
	Mapping  SubscriptionMapping   `json:"mapping"`
	External *ExternalSubscription `json:"external,omitempty"`
}

type Service interface {
	GetMapping(ctx context.Context) (*SubscriptionMapping, error)
	// GetDetail returns the mapping plus the processor's live subscription
	// state; External is nil when the processor call fails.
	GetDetail(ctx context.Context) (*SubscriptionDetail, error)
	// Subscribe creates the external customer+subscription and the local
	// mapping. It rejects when an active external subscription already
	// exists; a mapping pointing at a now-inactive subscription is replaced.
	Subscribe(ctx context.Context, req SubscribeRequest) (SubscriptionMapping, error)
	Cancel(ctx context.Context) error
	// ReportUsage forwards a metered quantity to the billing processor for
	// the caller's subscription. Intended for ingestion-volume metering; no
	// HTTP route exposes it, callers are in-process.
	ReportUsage(ctx context.Context, metricName string, quantity float64) error
	GetUsage(ctx context.Context) (*UsageSummary, error)
	// DeleteByExternalID drops the mapping for a subscription the processor
	// reports as cancelled (webhook path). Returns false when no mapping
	// referenced it.
	DeleteByExternalID(ctx context.Context, subscriptionID string) (bool, error)
}

var (
	ErrInvalidIdentity    = errors.New("invalid_identity")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrActiveSubscription = errors.New("active_subscription_exists")
	ErrNoSubscription     = errors.New("no_subscription")
	ErrBillingUnavailable = errors.New("billing_unavailable")
)
