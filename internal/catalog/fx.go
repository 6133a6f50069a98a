package catalog

import (
	"github.com/freeenergie/parrainage/internal/catalog/repository"
	"github.com/freeenergie/parrainage/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
