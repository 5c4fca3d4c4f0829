package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/carrierdesk/carrierdesk/internal/config"
	"github.com/carrierdesk/carrierdesk/internal/fieldmapping/domain"
	"github.com/carrierdesk/carrierdesk/internal/fieldmapping/repository"
	"github.com/carrierdesk/carrierdesk/internal/identity"
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

	require.NoError(t, db.AutoMigrate(&domain.FieldMapping{}))
	return db
}

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	holder, err := config.NewFieldMappingDefaultsHolder()
	require.NoError(t, err)

	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.Provide(),
		Defaults: holder,
	})
	return svc, db
}

func actorContext(userID, orgID string) context.Context {
	ctx := identity.WithUserID(context.Background(), userID)
	return identity.WithOrgID(ctx, orgID)
}

func TestSaveMappingIsIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	ctx := actorContext("u1", "orgA")

	req := domain.SaveRequest{CarrierField: "legal_name", ExternalField: "Name"}

	first, err := svc.SaveMapping(ctx, req)
	require.NoError(t, err)
	assert.True(t, first.IsActive)
	assert.Equal(t, "text", first.FieldType)

	second, err := svc.SaveMapping(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&domain.FieldMapping{}).
		Where("org_id = ? AND carrier_field = ?", "orgA", "legal_name").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSaveMappingReactivatesSoftDeleted(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := actorContext("u1", "orgA")

	_, err := svc.SaveMapping(ctx, domain.SaveRequest{CarrierField: "phone", ExternalField: "Phone"})
	require.NoError(t, err)

	deactivated, err := svc.DeactivateMapping(ctx, "phone")
	require.NoError(t, err)
	require.True(t, deactivated)

	active, err := svc.GetActiveMappings(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	saved, err := svc.SaveMapping(ctx, domain.SaveRequest{CarrierField: "phone", ExternalField: "MobilePhone"})
	require.NoError(t, err)
	assert.True(t, saved.IsActive)
	assert.Equal(t, "MobilePhone", saved.ExternalField)

	active, err = svc.GetActiveMappings(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestSaveMappingValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := actorContext("u1", "orgA")

	_, err := svc.SaveMapping(ctx, domain.SaveRequest{CarrierField: "", ExternalField: "Name"})
	assert.ErrorIs(t, err, domain.ErrInvalidField)

	_, err = svc.SaveMapping(ctx, domain.SaveRequest{CarrierField: "not_a_field", ExternalField: "Name"})
	assert.ErrorIs(t, err, domain.ErrUnknownField)

	_, err = svc.SaveMapping(ctx, domain.SaveRequest{CarrierField: "legal_name", ExternalField: "Name", FieldType: "blob"})
	assert.ErrorIs(t, err, domain.ErrInvalidType)
}

func TestSaveMappingAcceptsEveryFieldType(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := actorContext("u1", "orgA")

	for _, fieldType := range []string{"text", "number", "date", "boolean"} {
		saved, err := svc.SaveMapping(ctx, domain.SaveRequest{
			CarrierField:  "hm_shipper_operation",
			ExternalField: "HMShipperOperation__c",
			FieldType:     fieldType,
		})
		require.NoError(t, err, fieldType)
		assert.Equal(t, fieldType, saved.FieldType)
	}
}

func TestDeactivateMissingMappingReturnsFalse(t *testing.T) {
	svc, _ := newTestService(t)

	deactivated, err := svc.DeactivateMapping(actorContext("u1", "orgA"), "legal_name")
	require.NoError(t, err)
	assert.False(t, deactivated)
}

func TestGetMappingDictFailsOpen(t *testing.T) {
	svc, _ := newTestService(t)

	// No identity: an empty dict, never an error.
	dict := svc.GetMappingDict(context.Background())
	assert.Empty(t, dict)

	ctx := actorContext("u1", "orgA")
	_, err := svc.SaveMapping(ctx, domain.SaveRequest{CarrierField: "legal_name", ExternalField: "Name"})
	require.NoError(t, err)

	dict = svc.GetMappingDict(ctx)
	assert.Equal(t, map[string]string{"legal_name": "Name"}, dict)
}

func TestCreateDefaultsSeedsBuiltinSet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := actorContext("u1", "orgA")

	created, err := svc.CreateDefaults(ctx)
	require.NoError(t, err)
	assert.Len(t, created, len(config.DefaultFieldMappings()))

	// Idempotent: a second run changes nothing.
	again, err := svc.CreateDefaults(ctx)
	require.NoError(t, err)
	assert.Len(t, again, len(created))

	active, err := svc.GetActiveMappings(ctx)
	require.NoError(t, err)
	assert.Len(t, active, len(created))
}

func TestResetDeactivatesCustomAndReseeds(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := actorContext("u1", "orgA")

	_, err := svc.SaveMapping(ctx, domain.SaveRequest{CarrierField: "drivers", ExternalField: "NumberOfEmployees", FieldType: "number"})
	require.NoError(t, err)

	mappings, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.Len(t, mappings, len(config.DefaultFieldMappings()))

	active, err := svc.GetActiveMappings(ctx)
	require.NoError(t, err)
	assert.Len(t, active, len(config.DefaultFieldMappings()))
	for _, m := range active {
		assert.NotEqual(t, "drivers", m.CarrierField)
	}
}
