package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"chessetl/internal/services"
	"chessetl/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncRecordsProcessed()
	IncRecordsRejected()
	AddDuplicatesRemoved(n int)
	IncArchives(status string)
	SetDatasetRows(dataset string, count int)
	ObserveProcessDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	recordsProcessed  prometheus.Counter
	recordsRejected   prometheus.Counter
	duplicatesRemoved prometheus.Counter
	archives          *prometheus.CounterVec
	datasetRows       *prometheus.GaugeVec
	processDuration   prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncRecordsProcessed() {
	m.recordsProcessed.Inc()
}

func (m *MetricsProvider) IncRecordsRejected() {
	m.recordsRejected.Inc()
}

func (m *MetricsProvider) AddDuplicatesRemoved(n int) {
	m.duplicatesRemoved.Add(float64(n))
}

func (m *MetricsProvider) IncArchives(status string) {
	m.archives.WithLabelValues(status).Inc()
}

func (m *MetricsProvider) SetDatasetRows(dataset string, count int) {
	m.datasetRows.WithLabelValues(dataset).Set(float64(count))
}

func (m *MetricsProvider) ObserveProcessDuration(duration time.Duration) {
	m.processDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, service services.DatasetServiceInterface) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "chessetl_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chessetl_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chessetl_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chessetl_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		recordsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chessetl_records_processed_total",
			Help: "Raw game records successfully normalized",
		}),

		recordsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chessetl_records_rejected_total",
			Help: "Raw game records dropped during normalization",
		}),

		duplicatesRemoved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chessetl_duplicates_removed_total",
			Help: "Canonical rows removed by url deduplication",
		}),

		archives: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "chessetl_archives_total",
			Help: "Monthly archives by fetch outcome",
		}, []string{"status"}),

		datasetRows: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "chessetl_dataset_rows",
			Help: "Rows in the last written dataset",
		}, []string{"dataset"}),

		processDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "chessetl_process_duration_seconds",
			Help:    "Duration of full processing passes in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "chessetl_loaded_games",
		Help: "Canonical rows currently loaded in memory",
	}, func() float64 {
		return float64(service.Len())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncRecordsProcessed()                             {}
func (n *noopMetrics) IncRecordsRejected()                              {}
func (n *noopMetrics) AddDuplicatesRemoved(_ int)                       {}
func (n *noopMetrics) IncArchives(_ string)                             {}
func (n *noopMetrics) SetDatasetRows(_ string, _ int)                   {}
func (n *noopMetrics) ObserveProcessDuration(_ time.Duration)           {}
