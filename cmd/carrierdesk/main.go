package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/carrierdesk/carrierdesk/internal/config"
	"github.com/carrierdesk/carrierdesk/internal/logger"
	"github.com/carrierdesk/carrierdesk/internal/migration"
	"github.com/carrierdesk/carrierdesk/internal/server"
	"github.com/carrierdesk/carrierdesk/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
