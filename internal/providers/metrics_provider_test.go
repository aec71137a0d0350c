package providers

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"chessetl/internal/models"
	"chessetl/internal/services"
	"chessetl/internal/structures"
)

func metricsConfig(enabled bool) *structures.Config {
	return &structures.Config{Metrics: structures.MetricsConfig{Enabled: enabled}}
}

// --- minimal mock for DatasetServiceInterface ---

type metricsTestService struct{}

func (m *metricsTestService) Load(_ []models.CanonicalGameRow)            {}
func (m *metricsTestService) Rows() []models.CanonicalGameRow             { return nil }
func (m *metricsTestService) ByPlayer(_ string) []models.CanonicalGameRow { return nil }
func (m *metricsTestService) Players() []services.PlayerCount             { return nil }
func (m *metricsTestService) Summary() services.Summary                   { return services.Summary{} }
func (m *metricsTestService) Len() int                                    { return 0 }

func swapDefaultRegistry() func() {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	return func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := metricsConfig(false)
	m := NewMetricsProvider(conf, &metricsTestService{})
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncRequestsTotal("/games", 200)
	m.ObserveRequestDuration("/games", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncRecordsProcessed()
	m.IncRecordsRejected()
	m.AddDuplicatesRemoved(3)
	m.IncArchives("downloaded")
	m.SetDatasetRows("canonical", 10)
	m.ObserveProcessDuration(time.Millisecond)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	defer swapDefaultRegistry()()

	m := NewMetricsProvider(metricsConfig(true), &metricsTestService{})
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	defer swapDefaultRegistry()()

	m := NewMetricsProvider(metricsConfig(true), &metricsTestService{})

	// These should not panic
	m.IncRequestsTotal("/games", 200)
	m.IncRequestsTotal("/games", 404)
	m.ObserveRequestDuration("/games", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncRecordsProcessed()
	m.IncRecordsRejected()
	m.AddDuplicatesRemoved(2)
	m.IncArchives("failed")
	m.SetDatasetRows("perspective", 42)
	m.ObserveProcessDuration(100 * time.Millisecond)
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
