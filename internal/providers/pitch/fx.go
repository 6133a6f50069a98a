package pitch

import (
	"github.com/freeenergie/parrainage/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.pitch",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config) Provider {
	if cfg.PitchEndpoint == "" {
		return &NoOpProvider{}
	}
	return NewHTTP(Config{
		Endpoint: cfg.PitchEndpoint,
		APIKey:   cfg.PitchAPIKey,
	})
}
