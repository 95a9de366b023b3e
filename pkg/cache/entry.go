package cache

import (
	"encoding/json"
	"time"
)

// Entry represents a cached provider payload.
type Entry struct {
	// Payload is the data portion of a successful provider envelope
	Payload json.RawMessage `json:"payload"`

	// FetchedAt is when the payload was received from the provider
	FetchedAt time.Time `json:"fetched_at"`

	// TTL is how long the payload stays fresh after FetchedAt
	TTL time.Duration `json:"ttl"`
}

// ExpiresAt returns the instant the entry stops being fresh.
func (e *Entry) ExpiresAt() time.Time {
	return e.FetchedAt.Add(e.TTL)
}

// Expired reports whether the entry is stale at the given instant.
func (e *Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt())
}

// Age returns how long the payload has been cached at the given instant.
func (e *Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.FetchedAt)
}
