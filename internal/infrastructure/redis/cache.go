package redis

import (
	"context"
	"time"

	"github.com/avatarctic/trip-search/internal/core/ports"
	"github.com/go-redis/redis/v8"
)

// RedisCache implements ports.Cache using a Redis client, for deployments
// where several instances must share one cache.
type RedisCache struct {
	client *redis.Client
	// optional key prefix to namespace entries
	prefix string
}

// NewRedisCache creates a new Redis-backed cache.
func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) namespaced(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

// Get implements Cache.Get.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, c.namespaced(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set implements Cache.Set. Redis treats ttl<=0 as no expiration.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, c.namespaced(key), value, ttl).Err()
}

// Delete implements Cache.Delete.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.namespaced(key)).Err()
}

// SupportsShutdown reports that the cache owns a network client.
func (c *RedisCache) SupportsShutdown() bool { return true }

// Shutdown closes the underlying Redis client.
func (c *RedisCache) Shutdown(ctx context.Context) error {
	return c.client.Close()
}

var _ ports.Cache = (*RedisCache)(nil)
