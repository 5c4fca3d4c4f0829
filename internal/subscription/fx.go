package subscription

import (
	"github.com/carrierdesk/carrierdesk/internal/subscription/repository"
	"github.com/carrierdesk/carrierdesk/internal/subscription/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
