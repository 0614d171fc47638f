package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PIM fetch outcomes.
const (
	OutcomeSuccess       = "success"
	OutcomeCacheHit      = "cache_hit"
	OutcomeUpstreamError = "upstream_error"
	OutcomeDecodeError   = "decode_error"
)

// Upload and event processing outcomes.
const (
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Metrics groups the collectors exported on /metrics. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	pimFetches   *prometheus.CounterVec
	pimDuration  *prometheus.HistogramVec
	uploads      *prometheus.CounterVec
	events       *prometheus.CounterVec
}

// New registers the collectors on a fresh registry together with the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg)
}

// NewWithRegistry registers only the application collectors on reg.
func NewWithRegistry(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served, by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		pimFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pim_fetch_total",
			Help: "PIM endpoint fetches, by outcome.",
		}, []string{"endpoint", "outcome"}),
		pimDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pim_fetch_duration_seconds",
			Help:    "Upstream PIM call latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gallery_uploads_total",
			Help: "Gallery image uploads, by outcome.",
		}, []string{"outcome"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_events_total",
			Help: "Catalog events published or consumed, by type and outcome.",
		}, []string{"type", "outcome"}),
	}
	reg.MustRegister(m.httpRequests, m.httpDuration, m.pimFetches, m.pimDuration, m.uploads, m.events)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	route = normalizeLabel(route)
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObservePIM records one fetch outcome. elapsed is ignored for cache hits.
func (m *Metrics) ObservePIM(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	endpoint = normalizeLabel(endpoint)
	m.pimFetches.WithLabelValues(endpoint, outcome).Inc()
	if outcome != OutcomeCacheHit {
		m.pimDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	}
}

func (m *Metrics) IncUpload(outcome string) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (m *Metrics) IncEvent(eventType, outcome string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(normalizeLabel(eventType), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
