// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the engine.
type Metrics struct {
	// Resolver metrics
	ResolutionsTotal   *prometheus.CounterVec
	TierFailures       *prometheus.CounterVec
	TransitCorrections prometheus.Counter
	ResolutionLatency  prometheus.Histogram

	// Cache metrics
	CacheHits    prometheus.Counter
	CacheMisses  prometheus.Counter
	CacheEntries prometheus.Gauge

	// Calculation metrics
	ProfilesComputed   prometheus.Counter
	CuisinesAggregated prometheus.Counter
	MonicaUndefined    prometheus.Counter

	// Storage metrics
	ArchiveWrites      prometheus.Counter
	ArchiveWriteErrors prometheus.Counter

	// Health metrics
	LastSuccessfulResolution prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "alchm_engine"
	}

	return &Metrics{
		// Resolver metrics
		ResolutionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Total number of position resolutions by supplying tier",
		}, []string{"tier"}),
		TierFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "tier_failures_total",
			Help:      "Total number of source tier failures by tier and reason",
		}, []string{"tier", "reason"}),
		TransitCorrections: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "transit_corrections_total",
			Help:      "Total number of positions corrected against the transit table",
		}),
		ResolutionLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "resolution_duration_seconds",
			Help:      "Position resolution latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		// Cache metrics
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total number of position cache hits",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total number of position cache misses including TTL expiries",
		}),
		CacheEntries: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "entries",
			Help:      "Number of snapshots currently held in the position cache",
		}),

		// Calculation metrics
		ProfilesComputed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "calculation",
			Name:      "profiles_computed_total",
			Help:      "Total number of recipe profiles computed",
		}),
		CuisinesAggregated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "calculation",
			Name:      "cuisines_aggregated_total",
			Help:      "Total number of cuisine profiles aggregated",
		}),
		MonicaUndefined: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "calculation",
			Name:      "monica_undefined_total",
			Help:      "Total number of computations yielding an undefined monica constant",
		}),

		// Storage metrics
		ArchiveWrites: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "archive_writes_total",
			Help:      "Total number of computed profiles written to the archive",
		}),
		ArchiveWriteErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "archive_write_errors_total",
			Help:      "Total number of failed archive writes",
		}),

		// Health metrics
		LastSuccessfulResolution: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_resolution_timestamp",
			Help:      "Unix timestamp of last successful position resolution",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordResolution records a completed resolution with its supplying tier.
func RecordResolution(tier string, seconds float64) {
	DefaultMetrics.ResolutionsTotal.WithLabelValues(tier).Inc()
	DefaultMetrics.ResolutionLatency.Observe(seconds)
}

// RecordTierFailure records a source tier failure.
func RecordTierFailure(tier, reason string) {
	DefaultMetrics.TierFailures.WithLabelValues(tier, reason).Inc()
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() {
	DefaultMetrics.CacheHits.Inc()
}

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() {
	DefaultMetrics.CacheMisses.Inc()
}
