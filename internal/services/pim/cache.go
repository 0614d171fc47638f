package pim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"configurator/internal/logger"

	"github.com/redis/go-redis/v9"
)

const cacheNamespace = "configurator:pim"

// Cache stores raw PIM response bodies.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CacheKey namespaces an endpoint name.
func CacheKey(endpoint string) string {
	return cacheNamespace + ":" + endpoint
}

type redisCmdable interface {
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Del(context.Context, ...string) *redis.IntCmd
	Ping(context.Context) *redis.StatusCmd
	Close() error
}

type RedisCache struct {
	client redisCmdable
}

// NewRedisCache connects to the Redis instance at url and verifies it answers.
func NewRedisCache(ctx context.Context, url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := c.client.Get(ctx, CacheKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	return c.client.Set(ctx, CacheKey(key), body, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	namespaced := make([]string, len(keys))
	for i, k := range keys {
		namespaced[i] = CacheKey(k)
	}
	return c.client.Del(ctx, namespaced...).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NopCache) Delete(context.Context, ...string) error { return nil }

// OpenCache returns a Redis cache for url, or a NopCache when url is empty or
// Redis cannot be reached. The returned function releases the connection.
func OpenCache(ctx context.Context, url string, log *logger.Logger) (Cache, func() error) {
	if url == "" {
		log.Info("No Redis URL configured, PIM responses are not cached")
		return NopCache{}, func() error { return nil }
	}
	cache, err := NewRedisCache(ctx, url)
	if err != nil {
		log.Warn("PIM cache disabled: %v", err)
		return NopCache{}, func() error { return nil }
	}
	return cache, cache.Close
}
