package fieldmapping

import (
	"github.com/carrierdesk/carrierdesk/internal/fieldmapping/repository"
	"github.com/carrierdesk/carrierdesk/internal/fieldmapping/service"
	"go.uber.org/fx"
)

var Module = fx.Module("fieldmapping.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
