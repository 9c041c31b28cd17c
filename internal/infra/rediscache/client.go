package rediscache

import (
	"context"
	"time"

	"coworkhub/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to Redis. A nil client is returned when the server
// is unreachable so callers degrade to uncached reads instead of
// refusing to start.
func NewClient(cfg config.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
