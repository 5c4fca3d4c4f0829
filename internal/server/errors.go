package server

import (
	"errors"
	"net/http"
	"strings"

	carrierdomain "github.com/carrierdesk/carrierdesk/internal/carrier/domain"
	crmpushdomain "github.com/carrierdesk/carrierdesk/internal/crmpush/domain"
	fieldmappingdomain "github.com/carrierdesk/carrierdesk/internal/fieldmapping/domain"
	ingestdomain "github.com/carrierdesk/carrierdesk/internal/ingest/domain"
	membershipdomain "github.com/carrierdesk/carrierdesk/internal/membership/domain"
	subscriptiondomain "github.com/carrierdesk/carrierdesk/internal/subscription/domain"
	historydomain "github.com/carrierdesk/carrierdesk/internal/synchistory/domain"
	syncdomain "github.com/carrierdesk/carrierdesk/internal/syncstatus/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not_found")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, carrierdomain.ErrInvalidIdentity),
		errors.Is(err, syncdomain.ErrInvalidIdentity),
		errors.Is(err, historydomain.ErrInvalidIdentity),
		errors.Is(err, fieldmappingdomain.ErrInvalidIdentity),
		errors.Is(err, subscriptiondomain.ErrInvalidIdentity),
		errors.Is(err, membershipdomain.ErrInvalidIdentity),
		errors.Is(err, ingestdomain.ErrInvalidIdentity),
		errors.Is(err, crmpushdomain.ErrInvalidIdentity):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, subscriptiondomain.ErrActiveSubscription):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "an active subscription already exists",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, subscriptiondomain.ErrBillingUnavailable),
		errors.Is(err, ingestdomain.ErrOCRUnavailable),
		errors.Is(err, crmpushdomain.ErrCRMUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, carrierdomain.ErrInvalidUSDOT),
		errors.Is(err, syncdomain.ErrInvalidUSDOT),
		errors.Is(err, syncdomain.ErrInvalidStatus),
		errors.Is(err, historydomain.ErrInvalidUSDOT),
		errors.Is(err, historydomain.ErrInvalidStatus),
		errors.Is(err, fieldmappingdomain.ErrInvalidField),
		errors.Is(err, fieldmappingdomain.ErrUnknownField),
		errors.Is(err, fieldmappingdomain.ErrInvalidType),
		errors.Is(err, subscriptiondomain.ErrInvalidRequest),
		errors.Is(err, membershipdomain.ErrInvalidRole),
		errors.Is(err, ingestdomain.ErrEmptyBatch),
		errors.Is(err, ingestdomain.ErrEmptyDocument),
		errors.Is(err, crmpushdomain.ErrEmptyBatch),
		errors.Is(err, crmpushdomain.ErrNoCarriers):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, carrierdomain.ErrNotFound),
		errors.Is(err, syncdomain.ErrNotFound),
		errors.Is(err, subscriptiondomain.ErrNoSubscription),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	return err.Error()
}

func validationErrorField(code string) string {
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	switch code {
	case "empty_batch", "no_carriers":
		return "usdots"
	case "empty_document":
		return "document"
	case "unknown_carrier_field":
		return "carrier_field"
	default:
		return "request"
	}
}

func validationErrorMessage(code string) string {
	return strings.ReplaceAll(code, "_", " ")
}
