package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "neo_impact"

// Metrics holds the Prometheus counters and histograms for the briefing service.
type Metrics struct {
	// Briefing metrics.
	BriefingsServed  *prometheus.CounterVec // labels: choice={none,Survey,Deflect,Evacuate}
	BriefingFailures *prometheus.CounterVec // labels: reason={feed_unavailable,no_objects,invalid_date}
	BriefingDuration prometheus.Histogram

	// Upstream feed metrics.
	FeedRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	FeedAPIDuration prometheus.Histogram
	FeedCache       *prometheus.CounterVec // labels: result={hit,miss,error}

	// Small-body lookup metrics.
	BodyLookups *prometheus.CounterVec // labels: outcome={success,error,empty}
	BodyCache   *prometheus.CounterVec // labels: result={hit,miss}

	// Scenario publishing metrics.
	ScenariosPublished *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.BriefingsServed,
		m.BriefingFailures,
		m.BriefingDuration,
		m.FeedRequests,
		m.FeedAPIDuration,
		m.FeedCache,
		m.BodyLookups,
		m.BodyCache,
		m.ScenariosPublished,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		BriefingsServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "briefings_served_total",
			Help:      "Briefings returned to clients by mitigation choice.",
		}, []string{"choice"}),
		BriefingFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "briefing_failures_total",
			Help:      "Briefing requests that failed, by reason.",
		}, []string{"reason"}),
		BriefingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "briefing_duration_seconds",
			Help:      "Duration of a complete fetch-select-compute-narrate cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 12},
		}),
		FeedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_requests_total",
			Help:      "NeoWs feed requests by outcome.",
		}, []string{"outcome"}),
		FeedAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feed_api_duration_seconds",
			Help:      "NeoWs feed request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 12},
		}),
		FeedCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_cache_total",
			Help:      "Shared feed cache lookups by result.",
		}, []string{"result"}),
		BodyLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "body_lookups_total",
			Help:      "Small-Body Database lookups by outcome.",
		}, []string{"outcome"}),
		BodyCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "body_cache_total",
			Help:      "Small-body LRU cache lookups by result.",
		}, []string{"result"}),
		ScenariosPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scenarios_published_total",
			Help:      "Scenario records written to Kafka by outcome.",
		}, []string{"outcome"}),
	}
}
