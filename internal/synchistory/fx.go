package synchistory

import (
	"github.com/carrierdesk/carrierdesk/internal/synchistory/repository"
	"github.com/carrierdesk/carrierdesk/internal/synchistory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("synchistory.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
