package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrCacheMiss is returned when a key is absent or its entry expired
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidEntry is returned when a stored entry cannot be decoded
	ErrInvalidEntry = errors.New("invalid cache entry")
)

// Store is the cache backend consumed by the provider client.
//
// Get returns ErrCacheMiss for both absent keys and expired entries.
// Expired entries are evicted lazily: a read never deletes, the next
// successful Set for the same key overwrites.
type Store interface {
	// Get retrieves a fresh entry, or ErrCacheMiss.
	Get(ctx context.Context, key Key) (*Entry, error)

	// Set stores an entry, overwriting any previous one for the key.
	Set(ctx context.Context, key Key, entry *Entry) error

	// Len reports the number of resident entries, expired ones included.
	Len(ctx context.Context) (int, error)

	// Flush removes all entries.
	Flush(ctx context.Context) error
}

// MemoryStore is an in-process Store guarded by a single RWMutex.
// It is unbounded; Flush is the only way to reclaim memory eagerly.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry

	// now is replaced in tests to control expiry without sleeping
	now func() time.Time
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*Entry),
		now:     time.Now,
	}
}

// Get retrieves a fresh entry for the key.
// Returns ErrCacheMiss if the key is absent or the entry expired.
// Expired entries stay resident until overwritten or flushed.
func (s *MemoryStore) Get(ctx context.Context, key Key) (*Entry, error) {
	s.mu.RLock()
	entry, ok := s.entries[key.String()]
	s.mu.RUnlock()

	if !ok {
		CacheMisses.Inc()
		return nil, ErrCacheMiss
	}

	if entry.Expired(s.now()) {
		CacheExpirations.Inc()
		CacheMisses.Inc()
		return nil, ErrCacheMiss
	}

	CacheHits.WithLabelValues("memory").Inc()
	return entry, nil
}

// Set stores an entry, replacing any previous entry for the key.
func (s *MemoryStore) Set(ctx context.Context, key Key, entry *Entry) error {
	if entry == nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("cannot cache nil entry")
	}

	// A copy keeps later caller mutations out of the store.
	stored := *entry

	s.mu.Lock()
	s.entries[key.String()] = &stored
	size := len(s.entries)
	s.mu.Unlock()

	CacheSize.WithLabelValues("memory").Set(float64(size))
	return nil
}

// Len reports the number of resident entries, expired ones included.
func (s *MemoryStore) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// Flush removes all entries.
func (s *MemoryStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	s.entries = make(map[string]*Entry)
	s.mu.Unlock()

	CacheSize.WithLabelValues("memory").Set(0)
	return nil
}
