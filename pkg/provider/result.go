package provider

import (
	"encoding/json"
	"time"
)

// Source identifies where a result's payload came from.
type Source string

const (
	// SourceLive marks payloads fetched from the provider on this call.
	SourceLive Source = "live"

	// SourceCache marks payloads served from the response cache.
	SourceCache Source = "cache"

	// SourceFallback marks substitute payloads produced after a failure.
	SourceFallback Source = "fallback"
)

// Result is the outcome of a provider fetch. Fetch always returns a
// usable Result for transient failures; Degraded distinguishes real
// payloads from substitutes.
type Result struct {
	// Data is the payload: the envelope's data on success, a substitute
	// shape on degradation
	Data json.RawMessage `json:"data"`

	// Degraded is true when Data is a substitute, never real provider data
	Degraded bool `json:"degraded"`

	// Source is where Data came from
	Source Source `json:"source"`

	// Endpoint is the provider endpoint that was asked
	Endpoint string `json:"endpoint"`

	// FetchedAt is when Data was produced: the original fetch instant
	// for cached payloads, the current call for live and fallback ones
	FetchedAt time.Time `json:"fetchedAt"`

	// Message carries the degradation reason; empty for real payloads
	Message string `json:"message,omitempty"`
}

// Decode unmarshals the payload into v.
func (r *Result) Decode(v any) error {
	return json.Unmarshal(r.Data, v)
}
