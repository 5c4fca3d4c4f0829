package domain

import "context"

// BillingProcessor is the external billing system. Everything here is a live
// remote call; callers treat failures as external-service failures, not
// persistence failures.
type BillingProcessor interface {
	// FindActiveSubscription returns the customer's active subscription if
	// one exists, or nil.
	FindActiveSubscription(ctx context.Context, customerEmail string) (*ExternalSubscription, error)
	GetSubscription(ctx context.Context, subscriptionID string) (*ExternalSubscription, error)
	// CreateSubscription provisions the customer (by email) and the
	// subscription on the given plan, returning both identifiers.
	CreateSubscription(ctx context.Context, customerEmail, planID string) (*ExternalSubscription, error)
	CancelSubscription(ctx context.Context, subscriptionID string) error
	ReportUsage(ctx context.Context, subscriptionID, metricName string, quantity float64) error
	GetUsage(ctx context.Context, subscriptionID string) (*UsageSummary, error)
}
