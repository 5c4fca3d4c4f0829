package domain

import (
	"context"
	"errors"

	carrierdomain "github.com/carrierdesk/carrierdesk/internal/carrier/domain"
)

// RegistryLookup resolves a USDOT number against the national carrier
// registry. A carrier that the registry does not know comes back with
// Success=false, not an error; errors are reserved for transport failures.
type RegistryLookup interface {
	Lookup(ctx context.Context, usdot string) (carrierdomain.Lookup, error)
}

// DocumentOCR extracts USDOT numbers from an uploaded document.
type DocumentOCR interface {
	ExtractUSDOTs(ctx context.Context, filename string, content []byte) ([]string, error)
}

// ItemResult reports one USDOT's fate within a batch.
type ItemResult struct {
	USDOT   string `json:"usdot"`
	Success bool   `json:"success"`
	Detail  string `json:"detail,omitempty"`
}

type IngestResponse struct {
	Requested int          `json:"requested"`
	Persisted int          `json:"persisted"`
	Results   []ItemResult `json:"results"`
}

type Service interface {
	// Ingest looks up each USDOT and bulk-upserts the successful ones.
	// A failed lookup is reported per item and never aborts the batch.
	Ingest(ctx context.Context, usdots []string) (IngestResponse, error)
	// IngestDocument extracts USDOTs from the document, then delegates to
	// Ingest.
	IngestDocument(ctx context.Context, filename string, content []byte) (IngestResponse, error)
}

var (
	ErrInvalidIdentity = errors.New("invalid_identity")
	ErrEmptyBatch      = errors.New("empty_batch")
	ErrEmptyDocument   = errors.New("empty_document")
	ErrOCRUnavailable  = errors.New("ocr_unavailable")
)
