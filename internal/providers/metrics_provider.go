package providers

import (
	"sid/internal/structures"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RegistryGauges is the narrow registry view the gauge functions poll.
type RegistryGauges interface {
	UserCount() int
	RecordCount() int
}

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	AddIDsExtracted(count int)
	AddIDsSaved(count int)
	AddIDsDuplicate(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	idsExtracted        prometheus.Counter
	idsSaved            prometheus.Counter
	idsDuplicate        prometheus.Counter
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

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) AddIDsExtracted(count int) {
	m.idsExtracted.Add(float64(count))
}

func (m *MetricsProvider) AddIDsSaved(count int) {
	m.idsSaved.Add(float64(count))
}

func (m *MetricsProvider) AddIDsDuplicate(count int) {
	m.idsDuplicate.Add(float64(count))
}

// httpStatusBucket collapses a status code to its class so the label set
// stays small.
func httpStatusBucket(code int) string {
	if code < 100 || code > 599 {
		return "other"
	}
	return strconv.Itoa(code/100) + "xx"
}

func NewMetricsProvider(conf *structures.Config, gauges RegistryGauges) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sid_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sid_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sid_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sid_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sid_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		idsExtracted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sid_ids_extracted_total",
			Help: "Total number of identifiers extracted from input text",
		}),

		idsSaved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sid_ids_saved_total",
			Help: "Total number of new identifiers accepted into the record store",
		}),

		idsDuplicate: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sid_ids_duplicate_total",
			Help: "Total number of identifiers rejected as duplicates",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "sid_users_total",
		Help: "Current number of registered users",
	}, func() float64 {
		return float64(gauges.UserCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "sid_records_total",
		Help: "Current number of stored identifier records",
	}, func() float64 {
		return float64(gauges.RecordCount())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) AddIDsExtracted(_ int)                            {}
func (n *noopMetrics) AddIDsSaved(_ int)                                {}
func (n *noopMetrics) AddIDsDuplicate(_ int)                            {}
