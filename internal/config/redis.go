package config

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// NewRedis connects to Redis and pings it. It returns nil, nil when
// REDIS_ADDR is empty so callers can run without the feed cache.
func NewRedis(ctx context.Context, cfg *Config, logger *zap.Logger) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, feed cache disabled")
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}
	logger.Info("✅ Connected to Redis", zap.String("addr", cfg.RedisAddr), zap.String("ping", pong))
	return client, nil
}
