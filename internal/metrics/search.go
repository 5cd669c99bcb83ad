package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealsearch",
			Name:      "searches_total",
			Help:      "Total number of searches by outcome source",
		},
		[]string{"kind", "source"}, // source: cache_hit / database_hit / error
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dealsearch",
			Name:      "search_duration_seconds",
			Help:      "End-to-end search duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"kind"},
	)

	EntityFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealsearch",
			Name:      "entity_search_failures_total",
			Help:      "Per-entity search branches degraded to empty results",
		},
		[]string{"entity"},
	)

	CacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealsearch",
			Name:      "result_cache_total",
			Help:      "Result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	VocabularySize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dealsearch",
			Name:      "vocabulary_terms",
			Help:      "Terms currently held by the suggestion vocabulary",
		},
	)

	AnalyticsDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dealsearch",
			Name:      "analytics_events_dropped_total",
			Help:      "Analytics events dropped because the queue was full",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(EntityFailuresTotal)
	prometheus.MustRegister(CacheTotal)
	prometheus.MustRegister(VocabularySize)
	prometheus.MustRegister(AnalyticsDroppedTotal)
	searchMetricsRegistered = true
}
