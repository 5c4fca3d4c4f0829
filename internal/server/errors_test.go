package server

import (
	"errors"
	"net/http"
	"testing"

	carrierdomain "github.com/carrierdesk/carrierdesk/internal/carrier/domain"
	crmpushdomain "github.com/carrierdesk/carrierdesk/internal/crmpush/domain"
	fieldmappingdomain "github.com/carrierdesk/carrierdesk/internal/fieldmapping/domain"
	subscriptiondomain "github.com/carrierdesk/carrierdesk/internal/subscription/domain"
	syncdomain "github.com/carrierdesk/carrierdesk/internal/syncstatus/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"identity", carrierdomain.ErrInvalidIdentity, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "forbidden"},
		{"carrier not found", carrierdomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"status not found", syncdomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"no subscription", subscriptiondomain.ErrNoSubscription, http.StatusNotFound, "not_found"},
		{"subscription conflict", subscriptiondomain.ErrActiveSubscription, http.StatusConflict, "conflict"},
		{"billing down", subscriptiondomain.ErrBillingUnavailable, http.StatusServiceUnavailable, "service_unavailable"},
		{"crm down", crmpushdomain.ErrCRMUnavailable, http.StatusServiceUnavailable, "service_unavailable"},
		{"invalid usdot", syncdomain.ErrInvalidUSDOT, http.StatusBadRequest, "validation_error"},
		{"unknown field", fieldmappingdomain.ErrUnknownField, http.StatusBadRequest, "validation_error"},
		{"unmapped", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantType, payload.Type)
		})
	}
}

func TestMapErrorValidationPayload(t *testing.T) {
	status, payload := mapError(newValidationError("carrier_field", "invalid_field", "invalid field"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Len(t, payload.Errors, 1)
	assert.Equal(t, "carrier_field", payload.Errors[0].Field)
}
