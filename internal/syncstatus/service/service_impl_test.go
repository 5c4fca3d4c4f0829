package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/carrierdesk/carrierdesk/internal/identity"
	"github.com/carrierdesk/carrierdesk/internal/syncstatus/domain"
	"github.com/carrierdesk/carrierdesk/internal/syncstatus/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.CrmSyncStatus{}))
	return db
}

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: repository.Provide(),
	})
	return svc, db
}

func actorContext(userID, orgID string) context.Context {
	ctx := identity.WithUserID(context.Background(), userID)
	return identity.WithOrgID(ctx, orgID)
}

func TestUpsertCreatesThenUpdatesSingleRow(t *testing.T) {
	svc, db := newTestService(t)
	ctx := actorContext("u1", "orgA")

	first, err := svc.Upsert(ctx, domain.UpsertRequest{
		USDOT:  "123456",
		Status: domain.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, first.Status)
	assert.Equal(t, "u1", first.UserID)

	// Same key upserted by a different user: still one row, created_at
	// untouched, updated_at not going backwards.
	ctx2 := actorContext("u2", "orgA")
	second, err := svc.Upsert(ctx2, domain.UpsertRequest{
		USDOT:  "123456",
		Status: domain.StatusSuccess,
	})
	require.NoError(t, err)
	assert.Equal(t, "u2", second.UserID)
	assert.Equal(t, domain.StatusSuccess, second.Status)
	assert.WithinDuration(t, first.CreatedAt, second.CreatedAt, time.Millisecond)
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))

	var count int64
	require.NoError(t, db.Model(&domain.CrmSyncStatus{}).
		Where("usdot = ? AND org_id = ?", "123456", "orgA").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertIsOrgScoped(t *testing.T) {
	svc, db := newTestService(t)

	_, err := svc.Upsert(actorContext("u1", "orgA"), domain.UpsertRequest{
		USDOT:  "123456",
		Status: domain.StatusPending,
	})
	require.NoError(t, err)

	_, err = svc.Upsert(actorContext("u3", "orgB"), domain.UpsertRequest{
		USDOT:  "123456",
		Status: domain.StatusPending,
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&domain.CrmSyncStatus{}).
		Where("usdot = ?", "123456").
		Count(&count).Error)
	assert.Equal(t, int64(2), count)

	got, err := svc.GetByUSDOT(actorContext("u1", "orgA"), "123456")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
}

func TestUpsertRejectsInvalidInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := actorContext("u1", "orgA")

	_, err := svc.Upsert(ctx, domain.UpsertRequest{USDOT: "  ", Status: domain.StatusPending})
	assert.ErrorIs(t, err, domain.ErrInvalidUSDOT)

	_, err = svc.Upsert(ctx, domain.UpsertRequest{USDOT: "123456", Status: "RUNNING"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = svc.Upsert(context.Background(), domain.UpsertRequest{USDOT: "123456", Status: domain.StatusPending})
	assert.ErrorIs(t, err, domain.ErrInvalidIdentity)
}

func TestGetByUSDOTNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetByUSDOT(actorContext("u1", "orgA"), "999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteReturnsTrueThenFalse(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := actorContext("u1", "orgA")

	_, err := svc.Upsert(ctx, domain.UpsertRequest{USDOT: "123456", Status: domain.StatusPending})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, "123456")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = svc.GetByUSDOT(ctx, "123456")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	deleted, err = svc.Delete(ctx, "123456")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListByOrgFiltersStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := actorContext("u1", "orgA")

	for i, status := range []domain.SyncStatus{domain.StatusPending, domain.StatusSuccess, domain.StatusFailed} {
		_, err := svc.Upsert(ctx, domain.UpsertRequest{
			USDOT:  fmt.Sprintf("10000%d", i),
			Status: status,
		})
		require.NoError(t, err)
	}

	resp, err := svc.ListByOrg(ctx, domain.ListRequest{Status: "success"})
	require.NoError(t, err)
	require.Len(t, resp.Statuses, 1)
	assert.Equal(t, domain.StatusSuccess, resp.Statuses[0].Status)

	_, err = svc.ListByOrg(ctx, domain.ListRequest{Status: "bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	resp, err = svc.ListByOrg(ctx, domain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Statuses, 3)
}

func TestGetForUSDOTsSkipsNeverSynced(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := actorContext("u1", "orgA")

	_, err := svc.Upsert(ctx, domain.UpsertRequest{USDOT: "123456", Status: domain.StatusPending})
	require.NoError(t, err)

	statuses, err := svc.GetForUSDOTs(ctx, []string{"123456", "999999"})
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	_, ok := statuses["999999"]
	assert.False(t, ok)
}

func TestUpsertUpdatedAtMonotonic(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := actorContext("u1", "orgA")

	prev, err := svc.Upsert(ctx, domain.UpsertRequest{USDOT: "123456", Status: domain.StatusPending})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		time.Sleep(2 * time.Millisecond)
		next, err := svc.Upsert(ctx, domain.UpsertRequest{USDOT: "123456", Status: domain.StatusFailed})
		require.NoError(t, err)
		assert.False(t, next.UpdatedAt.Before(prev.UpdatedAt))
		assert.WithinDuration(t, prev.CreatedAt, next.CreatedAt, time.Millisecond)
		prev = next
	}
}
