package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits by backend (memory, redis)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundboard_cache_hits_total",
			Help: "Total number of provider cache hits",
		},
		[]string{"backend"}, // "memory", "redis"
	)

	// CacheMisses tracks cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fundboard_cache_misses_total",
			Help: "Total number of provider cache misses",
		},
	)

	// CacheExpirations tracks reads that found only a stale entry
	CacheExpirations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fundboard_cache_expirations_total",
			Help: "Total number of cache reads that found an expired entry",
		},
	)

	// CacheSize tracks the number of resident entries by backend
	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fundboard_cache_entries",
			Help: "Current number of resident cache entries",
		},
		[]string{"backend"}, // "memory", "redis"
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundboard_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "flush", "unmarshal"
	)
)
