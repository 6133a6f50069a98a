package referral

import (
	"github.com/freeenergie/parrainage/internal/referral/repository"
	"github.com/freeenergie/parrainage/internal/referral/service"
	"go.uber.org/fx"
)

var Module = fx.Module("referral.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
