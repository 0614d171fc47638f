package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservePIMSkipsLatencyOnCacheHit(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.ObservePIM("references", OutcomeSuccess, 120*time.Millisecond)
	m.ObservePIM("references", OutcomeCacheHit, 0)
	m.ObservePIM("", OutcomeUpstreamError, time.Second)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	fetches := findMetricFamily(mfs, "pim_fetch_total")
	require.NotNil(t, fetches)
	assert.Len(t, fetches.GetMetric(), 3)
	assert.Equal(t, 1.0, counterValue(fetches, "endpoint", "unknown"))

	latency := findMetricFamily(mfs, "pim_fetch_duration_seconds")
	require.NotNil(t, latency)
	var samples uint64
	for _, metric := range latency.GetMetric() {
		samples += metric.GetHistogram().GetSampleCount()
	}
	assert.Equal(t, uint64(2), samples)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTP("GET", "/api/families", 200, time.Millisecond)
		m.ObservePIM("stocks", OutcomeSuccess, time.Millisecond)
		m.IncUpload("stored")
		m.IncEvent("gallery.image_added", "published")
	})
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.ObserveHTTP("GET", "/api/families", 200, 5*time.Millisecond)
	m.IncUpload("stored")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",route="/api/families",status="200"} 1`)
	assert.Contains(t, rec.Body.String(), "gallery_uploads_total")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func counterValue(mf *dto.MetricFamily, label, value string) float64 {
	for _, metric := range mf.GetMetric() {
		for _, pair := range metric.GetLabel() {
			if pair.GetName() == label && pair.GetValue() == value {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}
