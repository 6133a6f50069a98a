package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/freeenergie/parrainage/internal/migration"
	"github.com/freeenergie/parrainage/internal/observability"
	"github.com/freeenergie/parrainage/internal/server"
	"github.com/freeenergie/parrainage/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
