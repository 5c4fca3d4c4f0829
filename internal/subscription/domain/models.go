package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// SubscriptionMapping is the only durable billing state held locally: a
// pointer from (user, org) to the billing processor's customer and
// subscription identifiers. Quota, usage, and lifecycle truth live in the
// processor.
type SubscriptionMapping struct {
	ID                     snowflake.ID `gorm:"column:id;primaryKey" json:"id"`
	UserID                 string       `gorm:"column:user_id;not null;uniqueIndex:idx_subscription_mappings_user_org" json:"user_id"`
	OrgID                  string       `gorm:"column:org_id;not null;uniqueIndex:idx_subscription_mappings_user_org" json:"org_id"`
	ExternalCustomerID     string       `gorm:"column:external_customer_id;not null" json:"external_customer_id"`
	ExternalSubscriptionID string       `gorm:"column:external_subscription_id;not null" json:"external_subscription_id"`
	CreatedAt              time.Time    `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (SubscriptionMapping) TableName() string {
	return "subscription_mappings"
}

// ExternalSubscription is the processor's view of a subscription.
type ExternalSubscription struct {
	SubscriptionID string `json:"subscription_id"`
	CustomerID     string `json:"customer_id"`
	PlanID         string `json:"plan_id"`
	Status         string `json:"status"`
	Active         bool   `json:"active"`
}

// UsageSummary is the processor's live usage report for a subscription.
type UsageSummary struct {
	SubscriptionID string  `json:"subscription_id"`
	MetricName     string  `json:"metric_name"`
	Used           float64 `json:"used"`
	Limit          float64 `json:"limit"`
	PeriodStart    string  `json:"period_start"`
	PeriodEnd      string  `json:"period_end"`
}
