package pim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"configurator/internal/logger"
	"configurator/internal/metrics"

	"golang.org/x/sync/singleflight"
)

// PIM endpoints exposed by the provider.
const (
	EndpointReferences = "references"
	EndpointDimensions = "dimensions"
	EndpointTissues    = "tissutheque"
	EndpointColors     = "couleurs"
	EndpointFeet       = "pieds"
	EndpointStocks     = "stocks"
)

// Endpoints lists every endpoint the client may call.
var Endpoints = []string{
	EndpointReferences,
	EndpointDimensions,
	EndpointTissues,
	EndpointColors,
	EndpointFeet,
	EndpointStocks,
}

const maxBodyBytes = 32 << 20

// KnownEndpoint reports whether endpoint is one of Endpoints.
func KnownEndpoint(endpoint string) bool {
	for _, e := range Endpoints {
		if e == endpoint {
			return true
		}
	}
	return false
}

type ClientConfig struct {
	BaseURL  string
	Token    string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Client reads the PIM. Failures are logged and reported as an empty list;
// callers never see an error.
type Client struct {
	baseURL    string
	token      string
	cacheTTL   time.Duration
	httpClient *http.Client
	cache      Cache
	group      singleflight.Group
	metrics    *metrics.Metrics
	logger     *logger.Logger
}

func NewClient(cfg ClientConfig, cache Cache, m *metrics.Metrics, log *logger.Logger) *Client {
	if cache == nil {
		cache = NopCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		token:    cfg.Token,
		cacheTTL: cfg.CacheTTL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache:   cache,
		metrics: m,
		logger:  log,
	}
}

// Payload returns the decoded body of endpoint as the provider sent it, or an
// empty list when it cannot be obtained.
func (c *Client) Payload(ctx context.Context, endpoint string) any {
	body, ok := c.body(ctx, endpoint)
	if !ok {
		return []any{}
	}
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		c.logger.Warn("PIM %s returned malformed JSON: %v", endpoint, err)
		return []any{}
	}
	return payload
}

// Fetch returns the list held by endpoint. Lists wrapped as {"data": [...]}
// are unwrapped; anything that is not a list becomes an empty list.
func (c *Client) Fetch(ctx context.Context, endpoint string) []any {
	switch v := c.Payload(ctx, endpoint).(type) {
	case []any:
		return v
	case map[string]any:
		if data, ok := v["data"].([]any); ok {
			return data
		}
	}
	return []any{}
}

// Invalidate drops cached bodies so the next fetch goes upstream. With no
// endpoints every endpoint is invalidated.
func (c *Client) Invalidate(ctx context.Context, endpoints ...string) error {
	if len(endpoints) == 0 {
		endpoints = Endpoints
	}
	if err := c.cache.Delete(ctx, endpoints...); err != nil {
		return fmt.Errorf("failed to invalidate PIM cache: %w", err)
	}
	c.logger.Info("PIM cache invalidated: %s", strings.Join(endpoints, ","))
	return nil
}

func (c *Client) body(ctx context.Context, endpoint string) ([]byte, bool) {
	if !KnownEndpoint(endpoint) {
		c.logger.Warn("PIM endpoint %q is not supported", endpoint)
		return nil, false
	}

	if cached, ok, err := c.cache.Get(ctx, endpoint); err != nil {
		c.logger.Warn("PIM cache read for %s failed: %v", endpoint, err)
	} else if ok {
		c.metrics.ObservePIM(endpoint, metrics.OutcomeCacheHit, 0)
		return cached, true
	}

	// Concurrent callers share one upstream call. It runs detached from the
	// first caller's cancellation and is bounded by the client timeout.
	v, err, _ := c.group.Do(endpoint, func() (interface{}, error) {
		return c.request(context.WithoutCancel(ctx), endpoint)
	})
	if err != nil {
		c.logger.Error("PIM %s fetch failed: %v", endpoint, err)
		return nil, false
	}
	return v.([]byte), true
}

func (c *Client) request(ctx context.Context, endpoint string) ([]byte, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		q := url.Values{}
		q.Set("api_token", c.token)
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObservePIM(endpoint, metrics.OutcomeUpstreamError, time.Since(start))
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.metrics.ObservePIM(endpoint, metrics.OutcomeUpstreamError, time.Since(start))
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.ObservePIM(endpoint, metrics.OutcomeUpstreamError, time.Since(start))
		return nil, fmt.Errorf("API request failed: %d - %s", resp.StatusCode, truncate(string(body), 200))
	}

	if !json.Valid(body) {
		c.metrics.ObservePIM(endpoint, metrics.OutcomeDecodeError, time.Since(start))
		return nil, fmt.Errorf("failed to decode response: invalid JSON")
	}

	c.metrics.ObservePIM(endpoint, metrics.OutcomeSuccess, time.Since(start))

	if c.cacheTTL > 0 {
		if err := c.cache.Set(ctx, endpoint, body, c.cacheTTL); err != nil {
			c.logger.Warn("PIM cache write for %s failed: %v", endpoint, err)
		}
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
