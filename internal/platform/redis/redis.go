// Package redis dials the Redis instance backing the notification channel.
package redis

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect opens a Redis client and verifies connectivity.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// ConnectFromEnv dials Redis using REDIS_ADDR and returns the client plus a
// cleanup function. When REDIS_ADDR is missing or the connection fails, it
// logs and returns nil with a no-op cleanup so callers can fall back to the
// in-process queue.
func ConnectFromEnv(ctx context.Context, logger *slog.Logger) (*redis.Client, func()) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		if logger != nil {
			logger.Warn("REDIS_ADDR not set, falling back to in-process notification queue")
		}
		return nil, func() {}
	}
	client, err := Connect(ctx, addr)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to connect to redis, falling back to in-process notification queue", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	if logger != nil {
		logger.Info("redis connection established", slog.String("addr", addr))
	}
	return client, func() { _ = client.Close() }
}
