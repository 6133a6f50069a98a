package sponsor

import (
	"github.com/freeenergie/parrainage/internal/sponsor/repository"
	"github.com/freeenergie/parrainage/internal/sponsor/service"
	"go.uber.org/fx"
)

var Module = fx.Module("sponsor.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
