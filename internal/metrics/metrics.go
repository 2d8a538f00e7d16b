package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Tracks HTTP requests served, by route template, method and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trade_query_http_requests_total",
			Help: "Total number of HTTP requests served (by route, method and status).",
		},
		[]string{"route", "method", "status"},
	)

	// Measures request handling duration.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trade_query_http_request_duration_seconds",
			Help:    "Duration of HTTP request handling in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// Gauges the size of the in-memory trade snapshot.
	DatasetSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "trade_query_dataset_size",
			Help: "Number of trades in the in-memory dataset snapshot.",
		},
	)
)

// ObserveRequest records one served request in the counter and histogram.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// SetDatasetSize records the snapshot size gauge (set once at startup).
func SetDatasetSize(n int) {
	DatasetSize.Set(float64(n))
}
