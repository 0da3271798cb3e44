// Package redisclient constructs the shared Redis client used for
// distributed rate limiting.
package redisclient

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rotaworks/rota-backend-go/internal/config"
)

// New instantiates a Redis client from configuration. It returns nil
// when no address is configured or the server cannot be reached;
// callers degrade gracefully by disabling rate limiting.
func New(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unreachable, rate limiting disabled", "addr", cfg.Addr, "error", err)
		return nil
	}

	return client
}
