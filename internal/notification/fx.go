package notification

import (
	"github.com/freeenergie/parrainage/internal/notification/repository"
	"github.com/freeenergie/parrainage/internal/notification/service"
	"go.uber.org/fx"
)

var Module = fx.Module("notification.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
