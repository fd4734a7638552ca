// Package cache is a small Redis-backed read-through cache used for the
// aggregate report endpoints. When Redis is unreachable the package
// degrades to a no-op so the catalog keeps serving from Mongo alone.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prakashraj/godown/config"
	"github.com/prakashraj/godown/pkg/metrics"
)

var RDB *redis.Client

// Connect initialises the Redis client and verifies the connection with a
// ping. On error the client is left nil and Get/Set/Del no-op safely.
func Connect(ctx context.Context) error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := RDB.Ping(ctx).Err(); err != nil {
		RDB = nil
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func Close() {
	if RDB != nil {
		_ = RDB.Close()
		RDB = nil
	}
}

// Get retrieves a cached value by key and unmarshals into dest.
// Returns true on a cache hit, false on miss or error.
func Get(ctx context.Context, key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(ctx, key).Result()
	if err != nil {
		metrics.CacheMisses.Inc()
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		metrics.CacheMisses.Inc()
		return false
	}

	metrics.CacheHits.Inc()
	return true
}

// Set stores value in Redis under key for the given TTL.
func Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(ctx, key, data, ttl).Err()
}

// Del removes one or more keys from Redis.
func Del(ctx context.Context, keys ...string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(ctx, keys...).Err()
}
