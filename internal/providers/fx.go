package providers

import (
	"github.com/carrierdesk/carrierdesk/internal/providers/billing"
	"github.com/carrierdesk/carrierdesk/internal/providers/crm"
	"github.com/carrierdesk/carrierdesk/internal/providers/registry"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	fx.Provide(
		registry.ProvideLookup,
		registry.ProvideOCR,
		crm.Provide,
		billing.Provide,
	),
)
