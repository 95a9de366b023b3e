package store

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QueryDuration tracks database operation latency.
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fundboard_store_query_duration_seconds",
			Help:    "Duration of store operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)

	// QueryErrors counts failed store operations.
	QueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundboard_store_errors_total",
			Help: "Total number of failed store operations",
		},
		[]string{"operation"},
	)
)

// observe records one operation's latency; use with defer at method entry.
func observe(operation string, start time.Time) {
	QueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
