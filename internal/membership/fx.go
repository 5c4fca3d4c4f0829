package membership

import (
	"github.com/carrierdesk/carrierdesk/internal/membership/repository"
	"github.com/carrierdesk/carrierdesk/internal/membership/service"
	"go.uber.org/fx"
)

var Module = fx.Module("membership.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
