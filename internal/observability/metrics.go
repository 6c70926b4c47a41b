package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "crisisflow"

// Metrics holds the Prometheus collectors for ingestion, clustering, the hub and the HTTP surface.
type Metrics struct {
	ReportsIngested   *prometheus.CounterVec // labels: source={web,sms,social}
	IngestFailures    prometheus.Counter
	IncidentsCreated  prometheus.Counter
	IncidentsAttached prometheus.Counter
	ClusterRetries    prometheus.Counter

	// Extraction metrics.
	ExtractionRequests  *prometheus.CounterVec // labels: provider, outcome={success,fallback,rules}
	ExtractionFallbacks prometheus.Counter
	ExtractionDuration  prometheus.Histogram

	// Geocoding metrics.
	GeocodeRequests *prometheus.CounterVec // labels: outcome={success,empty,error,skipped}
	GeocodeCache    *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeDuration prometheus.Histogram

	// Notification hub metrics.
	HubObservers        prometheus.Gauge
	HubDropped          prometheus.Counter
	EventsPublished     *prometheus.CounterVec   // labels: sink, outcome={ok,error}
	HTTPRequestDuration *prometheus.HistogramVec // labels: method, route, status
}

func newMetrics() *Metrics {
	return &Metrics{
		ReportsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_ingested_total",
			Help:      "Reports persisted by the ingestion pipeline.",
		}, []string{"source"}),
		IngestFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_failures_total",
			Help:      "Ingestions aborted at the persistence boundary.",
		}),
		IncidentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "incidents_created_total",
			Help:      "Incidents created by clustering.",
		}),
		IncidentsAttached: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "incidents_attached_total",
			Help:      "Reports merged into an existing active incident.",
		}),
		ClusterRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cluster_retries_total",
			Help:      "Find-or-create steps retried after a lost race.",
		}),
		ExtractionRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_requests_total",
			Help:      "Extraction calls by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ExtractionFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_fallbacks_total",
			Help:      "Extractions answered by the rule-based fallback.",
		}),
		ExtractionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_duration_seconds",
			Help:      "Extraction call duration including fallback.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding lookups by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_duration_seconds",
			Help:      "Geocoding provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		HubObservers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hub_observers",
			Help:      "Currently connected observers.",
		}),
		HubDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hub_dropped_observers_total",
			Help:      "Observers dropped because their queue was full or closed.",
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Domain events handed to sinks by sink and outcome.",
		}, []string{"sink", "outcome"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by method, route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.ReportsIngested,
		m.IngestFailures,
		m.IncidentsCreated,
		m.IncidentsAttached,
		m.ClusterRetries,
		m.ExtractionRequests,
		m.ExtractionFallbacks,
		m.ExtractionDuration,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeDuration,
		m.HubObservers,
		m.HubDropped,
		m.EventsPublished,
		m.HTTPRequestDuration,
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics registered in a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	m := newMetrics()
	prometheus.NewRegistry().MustRegister(m.collectors()...)
	return m
}
