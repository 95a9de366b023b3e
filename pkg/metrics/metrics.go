// Package metrics provides the centralized Prometheus metrics registry for
// fundboard. All metrics are defined in their respective packages (provider,
// cache, auth, store) to maintain modularity and avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by fundboard.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - fundboard_cache_hits_total{backend} (Counter): Cache hits by backend (memory, redis)
//   - fundboard_cache_misses_total (Counter): Cache misses
//   - fundboard_cache_expirations_total (Counter): Reads that found an expired entry
//   - fundboard_cache_errors_total{operation} (Counter): Cache store operation errors
//   - fundboard_cache_entries{backend} (Gauge): Resident cache entries
//
// Provider Metrics (pkg/provider):
//   - fundboard_provider_requests_total{endpoint, outcome} (Counter): Requests by endpoint and outcome (live, cache, fallback)
//   - fundboard_provider_request_duration_seconds{endpoint} (Histogram): Live request duration by endpoint
//   - fundboard_provider_errors_total{class} (Counter): Absorbed failures by class (transport, provider, malformed)
//   - fundboard_provider_degraded_total{endpoint} (Counter): Fallback payloads served by endpoint
//
// Auth Metrics (pkg/auth):
//   - fundboard_auth_login_total{outcome} (Counter): Login attempts by outcome (success, failure)
//   - fundboard_auth_registrations_total (Counter): Registered accounts
//
// Store Metrics (pkg/store):
//   - fundboard_store_query_duration_seconds{operation} (Histogram): Store operation duration
//   - fundboard_store_errors_total{operation} (Counter): Failed store operations
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(fundboard_cache_hits_total[5m])) /
//   (sum(rate(fundboard_cache_hits_total[5m])) + sum(rate(fundboard_cache_misses_total[5m])))
//
//   # Degraded Result Rate
//   sum(rate(fundboard_provider_degraded_total[5m])) /
//   sum(rate(fundboard_provider_requests_total[5m]))
//
//   # P95 Provider Latency
//   histogram_quantile(0.95, rate(fundboard_provider_request_duration_seconds_bucket[5m]))
//
//   # Failed Logins
//   rate(fundboard_auth_login_total{outcome="failure"}[5m])
