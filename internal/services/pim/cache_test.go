package pim

import (
	"context"
	"testing"
	"time"

	"configurator/internal/logger"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	values  map[string]string
	ttls    map[string]time.Duration
	deleted []string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.values, k)
	}
	f.deleted = append(f.deleted, keys...)
	return redis.NewIntResult(int64(len(keys)), nil)
}

func (f *fakeRedis) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Close() error { return nil }

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	cache := &RedisCache{client: fake}

	_, ok, err := cache.Get(ctx, EndpointStocks)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, EndpointStocks, []byte(`[]`), time.Minute))
	assert.Equal(t, time.Minute, fake.ttls["configurator:pim:stocks"])

	body, ok, err := cache.Get(ctx, EndpointStocks)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(body))

	require.NoError(t, cache.Delete(ctx, EndpointStocks, EndpointFeet))
	assert.Equal(t, []string{"configurator:pim:stocks", "configurator:pim:pieds"}, fake.deleted)

	_, ok, _ = cache.Get(ctx, EndpointStocks)
	assert.False(t, ok)
}

func TestNewRedisCacheRejectsBadURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not-a-url")
	assert.Error(t, err)
}

func TestOpenCacheFallsBackToNop(t *testing.T) {
	cache, closeCache := OpenCache(context.Background(), "", logger.Nop())
	assert.IsType(t, NopCache{}, cache)
	assert.NoError(t, closeCache())

	cache, closeCache = OpenCache(context.Background(), "not-a-url", logger.Nop())
	assert.IsType(t, NopCache{}, cache)
	assert.NoError(t, closeCache())
}
