// config/redis.go
package config

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client
var Ctx = context.Background()

// ConnectRedis wires the cache used for session lookups and the
// already-notified set. Optional: without it the auth middleware hits the
// database on every request and notification dedupe falls back to the local
// store.
func ConnectRedis(addr string) {
	if addr == "" {
		slog.Warn("REDIS_ADDR is not set, caching disabled")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		slog.Error("Redis connection failed, caching disabled", "error", err)
		RDB = nil
		return
	}

	slog.Info("Connected to Redis")
}
