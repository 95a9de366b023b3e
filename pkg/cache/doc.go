// Package cache provides TTL caching of fund provider responses.
//
// The cache stores the data portion of successful provider envelopes,
// keyed by a deterministic fingerprint of endpoint and parameters, with
// the following properties:
//
// - Order-independent fingerprints (same params, same key, any order)
// - Per-endpoint-class TTLs (quotes short, static fund data long)
// - Lazy eviction: expired entries miss on read and are overwritten
//   by the next successful fetch, no background sweeper
// - Pluggable backends: in-process map or Redis
// - Prometheus metrics for observability
//
// # Basic Usage
//
//	// Create an in-process store
//	store := cache.NewMemoryStore()
//
//	// Create cache key
//	key := cache.Key{
//		Endpoint: "SearchFunds",
//		Params:   map[string]any{"keyword": "ABC", "page": 0, "size": 20},
//	}
//
//	// Get from cache
//	entry, err := store.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// Cache miss - fetch from provider
//	}
//
//	// Store a payload for 60 seconds
//	err = store.Set(ctx, key, &cache.Entry{
//		Payload:   payload,
//		FetchedAt: time.Now(),
//		TTL:       60 * time.Second,
//	})
//
// # Redis Backend
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//	store := cache.NewRedisStore(redisClient)
//
// # TTL Policy
//
//	policy := cache.DefaultPolicy()
//	ttl := policy.For(cache.ClassQuote) // 60s
//
// Endpoint-to-class mapping lives with the provider client; this
// package only resolves a class to a duration.
//
// # Metrics
//
// The cache exports Prometheus metrics:
//
//   - fundboard_cache_hits_total{backend} - Cache hits
//   - fundboard_cache_misses_total - Cache misses
//   - fundboard_cache_expirations_total - Stale entries found on read
//   - fundboard_cache_entries{backend} - Resident entries
//   - fundboard_cache_errors_total{operation} - Cache operation errors
package cache
