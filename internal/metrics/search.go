package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sigimsae",
			Name:      "search_requests_total",
			Help:      "Total number of searches",
		},
		[]string{"mode", "script"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sigimsae",
			Name:      "search_duration_seconds",
			Help:      "Search duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		},
		[]string{"mode"},
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sigimsae",
			Name:      "search_results",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
		[]string{"mode"},
	)

	SearchInvalidPatternsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sigimsae",
			Name:      "search_invalid_patterns_total",
			Help:      "Regex searches whose pattern failed to compile",
		},
	)

	ScoreCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sigimsae",
			Name:      "score_cache_total",
			Help:      "Score cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	CatalogReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sigimsae",
			Name:      "catalog_reloads_total",
			Help:      "Catalog snapshot replacements",
		},
		[]string{"status"},
	)

	CatalogRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "sigimsae",
			Name:      "catalog_records",
			Help:      "Records in the current catalog snapshot",
		},
	)

	HistoryPersistErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sigimsae",
			Name:      "history_persist_errors_total",
			Help:      "Search history load/save failures",
		},
		[]string{"op"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search, cache, catalog and history metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(SearchInvalidPatternsTotal)
	prometheus.MustRegister(ScoreCacheTotal)
	prometheus.MustRegister(CatalogReloadsTotal)
	prometheus.MustRegister(CatalogRecords)
	prometheus.MustRegister(HistoryPersistErrorsTotal)
	searchMetricsRegistered = true
}
