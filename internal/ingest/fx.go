package ingest

import (
	"github.com/carrierdesk/carrierdesk/internal/ingest/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ingest.service",
	fx.Provide(service.New),
)
