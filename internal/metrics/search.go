package metrics

import "github.com/prometheus/client_golang/prometheus"

// Directory search Prometheus metrics.
var (
	DirectoryQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "packdex",
			Name:      "directory_queries_total",
			Help:      "Total number of directory reconciliation queries",
		},
		[]string{"viewer", "outcome"}, // outcome: "hits" / "empty"
	)

	DirectoryQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "packdex",
			Name:      "directory_query_duration_seconds",
			Help:      "Directory reconciliation duration in seconds",
			Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
		[]string{"viewer"},
	)

	IndexRecords = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "packdex",
			Name:      "index_records",
			Help:      "Number of records in the session search index",
		},
		[]string{"viewer"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus directory metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(DirectoryQueriesTotal)
	prometheus.MustRegister(DirectoryQueryDuration)
	prometheus.MustRegister(IndexRecords)
	searchMetricsRegistered = true
}
