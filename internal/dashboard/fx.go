package dashboard

import (
	"github.com/freeenergie/parrainage/internal/config"
	"github.com/freeenergie/parrainage/internal/dashboard/service"
	"github.com/freeenergie/parrainage/internal/share"
	"go.uber.org/fx"
)

var Module = fx.Module("dashboard.service",
	fx.Provide(newShareBuilder),
	fx.Provide(service.New),
)

func newShareBuilder(cfg config.Config) *share.Builder {
	return share.NewBuilder(cfg.ReferralBaseURL, cfg.QRServiceBaseURL)
}
