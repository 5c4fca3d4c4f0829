package syncstatus

import (
	"github.com/carrierdesk/carrierdesk/internal/syncstatus/repository"
	"github.com/carrierdesk/carrierdesk/internal/syncstatus/service"
	"go.uber.org/fx"
)

var Module = fx.Module("syncstatus.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
