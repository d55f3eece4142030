package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/metricdeck/insights/internal/clock"
	"github.com/metricdeck/insights/internal/config"
	"github.com/metricdeck/insights/internal/logger"
	"github.com/metricdeck/insights/internal/server"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		clock.Module,
		fx.Provide(newSnowflakeNode),
		server.Module,
	)
	app.Run()
}

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
