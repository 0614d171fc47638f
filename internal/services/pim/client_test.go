package pim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"configurator/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.entries[key]
	return body, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, body []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = body
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc, cache Cache) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(ClientConfig{
		BaseURL:  srv.URL + "/",
		Token:    "secret",
		Timeout:  time.Second,
		CacheTTL: time.Minute,
	}, cache, nil, logger.Nop())
}

func TestFetchPassesTokenAndUnwrapsData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/references", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("api_token"))
		w.Write([]byte(`{"data": [{"id": 1}, {"id": 2}]}`))
	}, nil)

	items := client.Fetch(context.Background(), EndpointReferences)
	assert.Len(t, items, 2)

	payload := client.Payload(context.Background(), EndpointReferences)
	assert.IsType(t, map[string]any{}, payload)
}

func TestFetchDegradesToEmptyList(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"error": "down"}`))
		},
		"malformed body": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>cloudflare</html>`))
		},
		"object payload": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"message": "ok"}`))
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, handler, nil)
			items := client.Fetch(context.Background(), EndpointStocks)
			require.NotNil(t, items)
			assert.Empty(t, items)
		})
	}
}

func TestPayloadDegradesOnUnreachableUpstream(t *testing.T) {
	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond}, nil, nil, nil)
	assert.Equal(t, []any{}, client.Payload(context.Background(), EndpointFeet))
}

func TestFetchRejectsUnknownEndpoint(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}, nil)

	assert.Empty(t, client.Fetch(context.Background(), "../admin"))
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestFetchUsesCacheUntilInvalidated(t *testing.T) {
	var calls int32
	cache := newMemoryCache()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`[{"code": "A"}]`))
	}, cache)

	ctx := context.Background()
	assert.Len(t, client.Fetch(ctx, EndpointTissues), 1)
	assert.Len(t, client.Fetch(ctx, EndpointTissues), 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	require.NoError(t, client.Invalidate(ctx, EndpointTissues))
	assert.Len(t, client.Fetch(ctx, EndpointTissues), 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFailedFetchIsNotCached(t *testing.T) {
	var calls int32
	cache := newMemoryCache()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[1]`))
	}, cache)

	ctx := context.Background()
	assert.Empty(t, client.Fetch(ctx, EndpointColors))
	assert.Len(t, client.Fetch(ctx, EndpointColors), 1)
}
