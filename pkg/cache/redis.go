package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by Redis, for deployments where cached
// payloads should survive restarts or be shared between processes.
// Keys expire server-side at the entry's freshness horizon.
type RedisStore struct {
	redis *redis.Client
}

// NewRedisStore creates a Redis-backed store.
// Panics if redisClient is nil.
func NewRedisStore(redisClient *redis.Client) *RedisStore {
	if redisClient == nil {
		panic("cache: redis client cannot be nil")
	}
	return &RedisStore{redis: redisClient}
}

// Get retrieves a fresh entry for the key.
// Returns ErrCacheMiss if the key is absent or the entry expired.
func (s *RedisStore) Get(ctx context.Context, key Key) (*Entry, error) {
	data, err := s.redis.Get(ctx, key.String()).Bytes()
	if err == redis.Nil {
		CacheMisses.Inc()
		return nil, ErrCacheMiss
	}
	if err != nil {
		CacheErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		CacheErrors.WithLabelValues("unmarshal").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	// Redis usually drops expired keys itself; this covers entries
	// written with a skewed clock. Stale reads miss, never delete.
	if entry.Expired(time.Now()) {
		CacheExpirations.Inc()
		CacheMisses.Inc()
		return nil, ErrCacheMiss
	}

	CacheHits.WithLabelValues("redis").Inc()
	return &entry, nil
}

// Set stores an entry with a server-side expiry at its freshness
// horizon. Already-expired entries are silently skipped.
func (s *RedisStore) Set(ctx context.Context, key Key, entry *Entry) error {
	if entry == nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("cannot cache nil entry")
	}

	remaining := time.Until(entry.ExpiresAt())
	if remaining <= 0 {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := s.redis.Set(ctx, key.String(), data, remaining).Err(); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

// Len reports the number of resident entries under the fund prefix.
func (s *RedisStore) Len(ctx context.Context) (int, error) {
	count := 0
	iter := s.redis.Scan(ctx, 0, "fund:*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		CacheErrors.WithLabelValues("len").Inc()
		return 0, fmt.Errorf("redis scan failed: %w", err)
	}

	CacheSize.WithLabelValues("redis").Set(float64(count))
	return count, nil
}

// Flush removes all entries under the fund prefix.
func (s *RedisStore) Flush(ctx context.Context) error {
	iter := s.redis.Scan(ctx, 0, "fund:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.redis.Del(ctx, iter.Val()).Err(); err != nil {
			CacheErrors.WithLabelValues("flush").Inc()
			return fmt.Errorf("redis del failed: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		CacheErrors.WithLabelValues("flush").Inc()
		return fmt.Errorf("redis scan failed: %w", err)
	}

	CacheSize.WithLabelValues("redis").Set(0)
	return nil
}
