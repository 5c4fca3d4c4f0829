package carrier

import (
	"github.com/carrierdesk/carrierdesk/internal/carrier/repository"
	"github.com/carrierdesk/carrierdesk/internal/carrier/service"
	"go.uber.org/fx"
)

var Module = fx.Module("carrier.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
