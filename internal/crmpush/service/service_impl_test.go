package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	carrierdomain "github.com/carrierdesk/carrierdesk/internal/carrier/domain"
	carrierrepository "github.com/carrierdesk/carrierdesk/internal/carrier/repository"
	"github.com/carrierdesk/carrierdesk/internal/config"
	"github.com/carrierdesk/carrierdesk/internal/crmpush/domain"
	fieldmappingdomain "github.com/carrierdesk/carrierdesk/internal/fieldmapping/domain"
	"github.com/carrierdesk/carrierdesk/internal/identity"
	historydomain "github.com/carrierdesk/carrierdesk/internal/synchistory/domain"
	historyrepository "github.com/carrierdesk/carrierdesk/internal/synchistory/repository"
	syncdomain "github.com/carrierdesk/carrierdesk/internal/syncstatus/domain"
	syncrepository "github.com/carrierdesk/carrierdesk/internal/syncstatus/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type crmClientStub struct {
	results []domain.PushResult
	err     error
	batches [][]domain.AccountPayload
}

func (c *crmClientStub) PushAccounts(ctx context.Context, payloads []domain.AccountPayload) ([]domain.PushResult, error) {
	c.batches = append(c.batches, payloads)
	if c.err != nil {
		return nil, c.err
	}
	return c.results, nil
}

type mappingSvcStub struct {
	dict map[string]string
}

func (m *mappingSvcStub) GetActiveMappings(ctx context.Context) ([]fieldmappingdomain.FieldMapping, error) {
	return nil, nil
}

func (m *mappingSvcStub) GetMappingDict(ctx context.Context) map[string]string {
	if m.dict == nil {
		return map[string]string{}
	}
	return m.dict
}

func (m *mappingSvcStub) SaveMapping(ctx context.Context, req fieldmappingdomain.SaveRequest) (fieldmappingdomain.FieldMapping, error) {
	return fieldmappingdomain.FieldMapping{}, nil
}

func (m *mappingSvcStub) DeactivateMapping(ctx context.Context, carrierField string) (bool, error) {
	return false, nil
}

func (m *mappingSvcStub) CreateDefaults(ctx context.Context) ([]fieldmappingdomain.FieldMapping, error) {
	return nil, nil
}

func (m *mappingSvcStub) Reset(ctx context.Context) ([]fieldmappingdomain.FieldMapping, error) {
	return nil, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&carrierdomain.CarrierRecord{},
		&syncdomain.CrmSyncStatus{},
		&historydomain.CrmSyncHistory{},
	))
	return db
}

func newTestService(t *testing.T, client *crmClientStub, dict map[string]string) (domain.Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		Cfg:         config.Config{CRMPlatform: "salesforce", CRMObjectType: "account"},
		GenID:       node,
		Client:      client,
		CarrierRepo: carrierrepository.Provide(),
		StatusRepo:  syncrepository.Provide(),
		HistoryRepo: historyrepository.Provide(),
		Mappings:    &mappingSvcStub{dict: dict},
	})
	return svc, db
}

func actorContext(userID, orgID string) context.Context {
	ctx := identity.WithUserID(context.Background(), userID)
	return identity.WithOrgID(ctx, orgID)
}

func seedCarrier(t *testing.T, db *gorm.DB, usdot, legalName string) {
	t.Helper()
	require.NoError(t, db.Create(&carrierdomain.CarrierRecord{
		USDOT:     usdot,
		LegalName: &legalName,
	}).Error)
}

func TestPushSuccessRecordsStatusAndHistory(t *testing.T) {
	client := &crmClientStub{
		results: []domain.PushResult{
			{USDOT: "123456", Success: true, ExternalObjectID: "acc_001"},
		},
	}
	svc, db := newTestService(t, client, map[string]string{"legal_name": "Name"})
	ctx := actorContext("u1", "orgA")

	seedCarrier(t, db, "123456", "Acme Trucking")

	resp, err := svc.Push(ctx, []string{"123456"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Succeeded)
	assert.Equal(t, 0, resp.Failed)

	var status syncdomain.CrmSyncStatus
	require.NoError(t, db.Where("usdot = ? AND org_id = ?", "123456", "orgA").First(&status).Error)
	assert.Equal(t, syncdomain.StatusSuccess, status.Status)
	require.NotNil(t, status.ExternalObjectID)
	assert.Equal(t, "acc_001", *status.ExternalObjectID)
	assert.NotNil(t, status.SyncedAt)

	var history []historydomain.CrmSyncHistory
	require.NoError(t, db.Where("usdot = ? AND org_id = ?", "123456", "orgA").Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, syncdomain.StatusSuccess, history[0].Status)
	require.NotNil(t, history[0].Detail)
	assert.Contains(t, *history[0].Detail, "acc_001")

	// Payload was built through the mapping dict.
	require.Len(t, client.batches, 1)
	require.Len(t, client.batches[0], 1)
	assert.Equal(t, "Acme Trucking", client.batches[0][0].Fields["Name"])
}

func TestPushFailureResetsExternalIDAndAppendsHistory(t *testing.T) {
	// First push succeeds, second fails; the stub swaps its result set
	// between calls.
	client := &crmClientStub{
		results: []domain.PushResult{
			{USDOT: "123456", Success: true, ExternalObjectID: "acc_001"},
		},
	}
	svc, db := newTestService(t, client, nil)
	ctx := actorContext("u1", "orgA")

	seedCarrier(t, db, "123456", "Acme Trucking")

	_, err := svc.Push(ctx, []string{"123456"})
	require.NoError(t, err)

	client.results = []domain.PushResult{
		{USDOT: "123456", Success: false, Detail: "HTTP 500: internal error"},
	}
	resp, err := svc.Push(ctx, []string{"123456"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Failed)

	var status syncdomain.CrmSyncStatus
	require.NoError(t, db.Where("usdot = ? AND org_id = ?", "123456", "orgA").First(&status).Error)
	assert.Equal(t, syncdomain.StatusFailed, status.Status)
	assert.Nil(t, status.ExternalObjectID)
	require.NotNil(t, status.SyncedAt)
	assert.WithinDuration(t, time.Now().UTC(), *status.SyncedAt, time.Minute)

	var history []historydomain.CrmSyncHistory
	require.NoError(t, db.Where("usdot = ?", "123456").Order("id asc").Find(&history).Error)
	require.Len(t, history, 2)
	assert.Equal(t, syncdomain.StatusSuccess, history[0].Status)
	assert.Equal(t, syncdomain.StatusFailed, history[1].Status)
	require.NotNil(t, history[1].Detail)
	assert.Contains(t, *history[1].Detail, "HTTP 500")
}

func TestFirstPushFailureStillRecordsAttemptTime(t *testing.T) {
	client := &crmClientStub{
		results: []domain.PushResult{
			{USDOT: "123456", Success: false, Detail: "HTTP 500: internal error"},
		},
	}
	svc, db := newTestService(t, client, nil)

	seedCarrier(t, db, "123456", "Acme Trucking")

	resp, err := svc.Push(actorContext("u1", "orgA"), []string{"123456"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Failed)

	var status syncdomain.CrmSyncStatus
	require.NoError(t, db.Where("usdot = ? AND org_id = ?", "123456", "orgA").First(&status).Error)
	assert.Equal(t, syncdomain.StatusFailed, status.Status)
	require.NotNil(t, status.SyncedAt)
	assert.WithinDuration(t, time.Now().UTC(), *status.SyncedAt, time.Minute)
}

func TestPushTransportFailureRecordsEveryItem(t *testing.T) {
	client := &crmClientStub{err: errors.New("connection refused")}
	svc, db := newTestService(t, client, nil)
	ctx := actorContext("u1", "orgA")

	seedCarrier(t, db, "111111", "First Carrier")
	seedCarrier(t, db, "333333", "Second Carrier")

	resp, err := svc.Push(ctx, []string{"111111", "333333"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Failed)

	var historyCount int64
	require.NoError(t, db.Model(&historydomain.CrmSyncHistory{}).Count(&historyCount).Error)
	assert.Equal(t, int64(2), historyCount)

	var statusCount int64
	require.NoError(t, db.Model(&syncdomain.CrmSyncStatus{}).
		Where("sync_status = ?", syncdomain.StatusFailed).
		Count(&statusCount).Error)
	assert.Equal(t, int64(2), statusCount)
}

func TestPushOneItemFailureDoesNotBlockOthers(t *testing.T) {
	client := &crmClientStub{
		results: []domain.PushResult{
			{USDOT: "111111", Success: true, ExternalObjectID: "acc_100"},
			{USDOT: "333333", Success: false, Detail: "duplicate account"},
		},
	}
	svc, db := newTestService(t, client, nil)
	ctx := actorContext("u1", "orgA")

	seedCarrier(t, db, "111111", "First Carrier")
	seedCarrier(t, db, "333333", "Second Carrier")

	resp, err := svc.Push(ctx, []string{"111111", "333333"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Succeeded)
	assert.Equal(t, 1, resp.Failed)

	var ok syncdomain.CrmSyncStatus
	require.NoError(t, db.Where("usdot = ?", "111111").First(&ok).Error)
	assert.Equal(t, syncdomain.StatusSuccess, ok.Status)

	var failed syncdomain.CrmSyncStatus
	require.NoError(t, db.Where("usdot = ?", "333333").First(&failed).Error)
	assert.Equal(t, syncdomain.StatusFailed, failed.Status)
}

func TestPushValidation(t *testing.T) {
	svc, _ := newTestService(t, &crmClientStub{}, nil)

	_, err := svc.Push(actorContext("u1", "orgA"), nil)
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)

	_, err = svc.Push(actorContext("u1", "orgA"), []string{"999999"})
	assert.ErrorIs(t, err, domain.ErrNoCarriers)

	_, err = svc.Push(context.Background(), []string{"123456"})
	assert.ErrorIs(t, err, domain.ErrInvalidIdentity)
}
