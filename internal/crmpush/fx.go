package crmpush

import (
	"github.com/carrierdesk/carrierdesk/internal/crmpush/service"
	"go.uber.org/fx"
)

var Module = fx.Module("crmpush.service",
	fx.Provide(service.New),
)
