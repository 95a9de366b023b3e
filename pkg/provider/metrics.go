package provider

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderRequests tracks fetches by endpoint and payload outcome
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundboard_provider_requests_total",
			Help: "Total provider fetches by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"}, // "live", "cache", "fallback"
	)

	// RequestDuration tracks end-to-end fetch duration by endpoint
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fundboard_provider_request_duration_seconds",
			Help:    "Provider fetch duration in seconds by endpoint",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"endpoint"},
	)

	// ProviderErrors tracks failures by classification
	ProviderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundboard_provider_errors_total",
			Help: "Total provider errors by class",
		},
		[]string{"class"},
	)

	// DegradedResults tracks substitute payloads served by endpoint
	DegradedResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundboard_provider_degraded_total",
			Help: "Total degraded results served by endpoint",
		},
		[]string{"endpoint"},
	)
)
