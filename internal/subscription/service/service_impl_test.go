package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/carrierdesk/carrierdesk/internal/identity"
	"github.com/carrierdesk/carrierdesk/internal/subscription/domain"
	"github.com/carrierdesk/carrierdesk/internal/subscription/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type processorStub struct {
	active    *domain.ExternalSubscription
	created   *domain.ExternalSubscription
	findErr   error
	createErr error
	cancelErr error
	cancelled []string
}

func (p *processorStub) FindActiveSubscription(ctx context.Context, customerEmail string) (*domain.ExternalSubscription, error) {
	return p.active, p.findErr
}

func (p *processorStub) GetSubscription(ctx context.Context, subscriptionID string) (*domain.ExternalSubscription, error) {
	if p.created != nil && p.created.SubscriptionID == subscriptionID {
		return p.created, nil
	}
	return nil, errors.New("not found")
}

func (p *processorStub) CreateSubscription(ctx context.Context, customerEmail, planID string) (*domain.ExternalSubscription, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	return p.created, nil
}

func (p *processorStub) CancelSubscription(ctx context.Context, subscriptionID string) error {
	if p.cancelErr != nil {
		return p.cancelErr
	}
	p.cancelled = append(p.cancelled, subscriptionID)
	return nil
}

func (p *processorStub) ReportUsage(ctx context.Context, subscriptionID, metricName string, quantity float64) error {
	return nil
}

func (p *processorStub) GetUsage(ctx context.Context, subscriptionID string) (*domain.UsageSummary, error) {
	return &domain.UsageSummary{SubscriptionID: subscriptionID, MetricName: "carrier_syncs", Used: 10, Limit: 100}, nil
}

func newTestService(t *testing.T, processor *processorStub) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.SubscriptionMapping{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Repo:      repository.Provide(),
		Processor: processor,
	})
	return svc, db
}

func actorContext(userID, orgID string) context.Context {
	ctx := identity.WithUserID(context.Background(), userID)
	return identity.WithOrgID(ctx, orgID)
}

func TestSubscribeCreatesMapping(t *testing.T) {
	processor := &processorStub{
		created: &domain.ExternalSubscription{
			SubscriptionID: "sub_001",
			CustomerID:     "cus_001",
			PlanID:         "starter",
			Status:         "active",
			Active:         true,
		},
	}
	svc, db := newTestService(t, processor)
	ctx := actorContext("u1", "orgA")

	mapping, err := svc.Subscribe(ctx, domain.SubscribeRequest{
		CustomerEmail: "owner@example.com",
		PlanID:        "starter",
	})
	require.NoError(t, err)
	assert.Equal(t, "cus_001", mapping.ExternalCustomerID)
	assert.Equal(t, "sub_001", mapping.ExternalSubscriptionID)

	var count int64
	require.NoError(t, db.Model(&domain.SubscriptionMapping{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubscribeRejectsActiveExternal(t *testing.T) {
	processor := &processorStub{
		active: &domain.ExternalSubscription{SubscriptionID: "sub_000", Active: true},
	}
	svc, _ := newTestService(t, processor)

	_, err := svc.Subscribe(actorContext("u1", "orgA"), domain.SubscribeRequest{
		CustomerEmail: "owner@example.com",
		PlanID:        "starter",
	})
	assert.ErrorIs(t, err, domain.ErrActiveSubscription)
}

func TestSubscribeReplacesStaleMapping(t *testing.T) {
	processor := &processorStub{
		created: &domain.ExternalSubscription{
			SubscriptionID: "sub_002",
			CustomerID:     "cus_001",
			Active:         true,
		},
	}
	svc, db := newTestService(t, processor)
	ctx := actorContext("u1", "orgA")

	// A mapping pointing at a subscription the processor no longer reports
	// as active.
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	require.NoError(t, db.Create(&domain.SubscriptionMapping{
		ID:                     node.Generate(),
		UserID:                 "u1",
		OrgID:                  "orgA",
		ExternalCustomerID:     "cus_001",
		ExternalSubscriptionID: "sub_stale",
	}).Error)

	mapping, err := svc.Subscribe(ctx, domain.SubscribeRequest{
		CustomerEmail: "owner@example.com",
		PlanID:        "starter",
	})
	require.NoError(t, err)
	assert.Equal(t, "sub_002", mapping.ExternalSubscriptionID)

	var count int64
	require.NoError(t, db.Model(&domain.SubscriptionMapping{}).
		Where("user_id = ? AND org_id = ?", "u1", "orgA").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubscribeValidation(t *testing.T) {
	svc, _ := newTestService(t, &processorStub{})

	_, err := svc.Subscribe(actorContext("u1", "orgA"), domain.SubscribeRequest{PlanID: "starter"})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = svc.Subscribe(context.Background(), domain.SubscribeRequest{
		CustomerEmail: "owner@example.com", PlanID: "starter",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidIdentity)
}

func TestSubscribeBillingUnavailable(t *testing.T) {
	svc, _ := newTestService(t, &processorStub{findErr: errors.New("connection refused")})

	_, err := svc.Subscribe(actorContext("u1", "orgA"), domain.SubscribeRequest{
		CustomerEmail: "owner@example.com", PlanID: "starter",
	})
	assert.ErrorIs(t, err, domain.ErrBillingUnavailable)
}

func TestCancelRemovesMapping(t *testing.T) {
	processor := &processorStub{
		created: &domain.ExternalSubscription{SubscriptionID: "sub_001", CustomerID: "cus_001", Active: true},
	}
	svc, db := newTestService(t, processor)
	ctx := actorContext("u1", "orgA")

	_, err := svc.Subscribe(ctx, domain.SubscribeRequest{CustomerEmail: "owner@example.com", PlanID: "starter"})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx))
	assert.Equal(t, []string{"sub_001"}, processor.cancelled)

	var count int64
	require.NoError(t, db.Model(&domain.SubscriptionMapping{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	assert.ErrorIs(t, svc.Cancel(ctx), domain.ErrNoSubscription)
}

func TestUsagePassThroughRequiresMapping(t *testing.T) {
	processor := &processorStub{
		created: &domain.ExternalSubscription{SubscriptionID: "sub_001", CustomerID: "cus_001", Active: true},
	}
	svc, _ := newTestService(t, processor)
	ctx := actorContext("u1", "orgA")

	_, err := svc.GetUsage(ctx)
	assert.ErrorIs(t, err, domain.ErrNoSubscription)

	_, err = svc.Subscribe(ctx, domain.SubscribeRequest{CustomerEmail: "owner@example.com", PlanID: "starter"})
	require.NoError(t, err)

	usage, err := svc.GetUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sub_001", usage.SubscriptionID)

	require.NoError(t, svc.ReportUsage(ctx, "carrier_syncs", 3))
}

func TestDeleteByExternalID(t *testing.T) {
	processor := &processorStub{
		created: &domain.ExternalSubscription{SubscriptionID: "sub_001", CustomerID: "cus_001", Active: true},
	}
	svc, _ := newTestService(t, processor)
	ctx := actorContext("u1", "orgA")

	_, err := svc.Subscribe(ctx, domain.SubscribeRequest{CustomerEmail: "owner@example.com", PlanID: "starter"})
	require.NoError(t, err)

	removed, err := svc.DeleteByExternalID(context.Background(), "sub_001")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.DeleteByExternalID(context.Background(), "sub_001")
	require.NoError(t, err)
	assert.False(t, removed)
}
