package ratelimit

import (
	"github.com/freeenergie/parrainage/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var Module = fx.Module("rate.limit",
	fx.Provide(newRedisClient),
	fx.Provide(NewTokenBucket),
)

// newRedisClient returns nil when REDIS_ADDR is unset; the limiter then
// passes every request through.
func newRedisClient(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}
