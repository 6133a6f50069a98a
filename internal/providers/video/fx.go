package video

import (
	"github.com/freeenergie/parrainage/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.video",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config) Provider {
	if cfg.VideoEndpoint == "" {
		return &NoOpProvider{}
	}
	return NewHTTP(Config{
		Endpoint: cfg.VideoEndpoint,
		APIKey:   cfg.VideoAPIKey,
	})
}
