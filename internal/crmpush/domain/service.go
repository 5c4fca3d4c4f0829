package domain

import (
	"context"
	"errors"
)

// AccountPayload is one carrier rendered through the org's field mappings,
// keyed by external CRM field API names.
type AccountPayload struct {
	USDOT  string                 `json:"usdot"`
	Fields map[string]interface{} `json:"fields"`
}

// PushResult is the CRM's per-item outcome for a batch push.
type PushResult struct {
	USDOT            string `json:"usdot"`
	Success          bool   `json:"success"`
	ExternalObjectID string `json:"external_object_id,omitempty"`
	Detail           string `json:"detail,omitempty"`
}

// CRMClient pushes account payloads to the external CRM. The client returns
// one result per payload; a transport-level error applies to the whole batch.
type CRMClient interface {
	PushAccounts(ctx context.Context, payloads []AccountPayload) ([]PushResult, error)
}

type PushResponse struct {
	Requested int          `json:"requested"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Results   []PushResult `json:"results"`
}

type Service interface {
	// Push sends the listed carriers to the CRM and records every outcome:
	// for each item, one history row is appended and the current status row
	// upserted inside one transaction. One item's failure never blocks the
	// rest of the batch.
	Push(ctx context.Context, usdots []string) (PushResponse, error)
}

var (
	ErrInvalidIdentity = errors.New("invalid_identity")
	ErrEmptyBatch      = errors.New("empty_batch")
	ErrNoCarriers      = errors.New("no_carriers")
	ErrCRMUnavailable  = errors.New("crm_unavailable")
)
