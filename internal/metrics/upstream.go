package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// SEC API and routing Prometheus metrics.
var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sectool",
			Name:      "upstream_requests_total",
			Help:      "Total number of SEC API requests",
		},
		[]string{"operation", "status"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sectool",
			Name:      "upstream_request_duration_seconds",
			Help:      "SEC API request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	UpstreamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sectool",
			Name:      "upstream_errors_total",
			Help:      "Total SEC API errors",
		},
		[]string{"operation", "error_type"},
	)

	RoutedQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sectool",
			Name:      "routed_queries_total",
			Help:      "Routed tool queries by route and status",
		},
		[]string{"route", "status"},
	)

	ResultCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sectool",
			Name:      "result_cache_total",
			Help:      "Result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var registerUpstreamOnce sync.Once

// RegisterUpstreamMetrics registers the SEC API metrics with the default
// registry. Safe to call more than once, including concurrently.
func RegisterUpstreamMetrics() {
	registerUpstreamOnce.Do(func() {
		prometheus.MustRegister(
			UpstreamRequestsTotal,
			UpstreamRequestDuration,
			UpstreamErrorsTotal,
			RoutedQueriesTotal,
			ResultCacheTotal,
		)
	})
}

// RouteRecorder counts routed queries into RoutedQueriesTotal.
type RouteRecorder struct{}

// RecordRoute implements router.RouteRecorder.
func (RouteRecorder) RecordRoute(route string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RoutedQueriesTotal.WithLabelValues(route, status).Inc()
}
