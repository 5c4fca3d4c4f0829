package registry

import (
	"github.com/carrierdesk/carrierdesk/internal/config"
	ingestdomain "github.com/carrierdesk/carrierdesk/internal/ingest/domain"
)

func ProvideLookup(cfg config.Config) ingestdomain.RegistryLookup {
	return NewClient(cfg)
}

func ProvideOCR(cfg config.Config) ingestdomain.DocumentOCR {
	return NewClient(cfg)
}
