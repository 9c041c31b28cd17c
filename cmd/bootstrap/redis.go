package bootstrap

import (
	"context"
	"log/slog"

	"coworkhub/internal/infra/rediscache"
	"coworkhub/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	client := rediscache.NewClient(cfg.Redis)
	if client == nil {
		slog.Warn("redis unreachable, space directory cache disabled", "addr", cfg.Redis.Addr)
		return nil
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client
}
