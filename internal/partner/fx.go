package partner

import (
	"github.com/freeenergie/parrainage/internal/partner/repository"
	"github.com/freeenergie/parrainage/internal/partner/service"
	"go.uber.org/fx"
)

var Module = fx.Module("partner.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
