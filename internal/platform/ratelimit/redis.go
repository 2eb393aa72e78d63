package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"goldenPalmDash/internal/config"
)

// NewRedisClient connects and pings with a short timeout. It returns nil when Redis is
// not configured or not reachable; callers then serve without limiting.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		slog.Info("redis disabled: no address configured")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		slog.Warn("redis unreachable, rate limiting disabled", slog.String("addr", cfg.Addr), slog.Any("error", err))
		_ = client.Close()
		return nil
	}
	slog.Info("redis connected", slog.String("addr", cfg.Addr))
	return client
}
