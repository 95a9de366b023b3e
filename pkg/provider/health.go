package provider

import (
	"sync"
	"time"
)

// Health status levels for an endpoint.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Thresholds for health classification.
const (
	// FailuresDegraded marks an endpoint degraded when this many
	// consecutive calls have failed.
	FailuresDegraded = 3

	// FailuresUnhealthy marks an endpoint unhealthy when this many
	// consecutive calls have failed.
	FailuresUnhealthy = 10
)

// EndpointHealth is the observed call state of one provider endpoint.
type EndpointHealth struct {
	Endpoint            string    `json:"endpoint"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	TotalRequests       int64     `json:"total_requests"`
	TotalFailures       int64     `json:"total_failures"`
	LastSuccess         time.Time `json:"last_success,omitzero"`
	LastFailure         time.Time `json:"last_failure,omitzero"`
}

// Status classifies the endpoint from its consecutive failure streak.
func (h *EndpointHealth) Status() string {
	switch {
	case h.ConsecutiveFailures >= FailuresUnhealthy:
		return StatusUnhealthy
	case h.ConsecutiveFailures >= FailuresDegraded:
		return StatusDegraded
	default:
		return StatusHealthy
	}
}

// Tracker observes per-endpoint call outcomes for operators and the
// readiness probe. It never gates fetches: an unhealthy endpoint still
// gets its call, and its failure still degrades into a fallback result.
type Tracker struct {
	mu        sync.Mutex
	endpoints map[string]*EndpointHealth
	now       func() time.Time
}

// NewTracker creates an empty health tracker.
func NewTracker() *Tracker {
	return &Tracker{
		endpoints: make(map[string]*EndpointHealth),
		now:       time.Now,
	}
}

// RecordSuccess resets the endpoint's failure streak.
func (t *Tracker) RecordSuccess(endpoint string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := t.endpoint(endpoint)
	h.ConsecutiveFailures = 0
	h.TotalRequests++
	h.LastSuccess = t.now()
}

// RecordFailure extends the endpoint's failure streak.
func (t *Tracker) RecordFailure(endpoint string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := t.endpoint(endpoint)
	h.ConsecutiveFailures++
	h.TotalRequests++
	h.TotalFailures++
	h.LastFailure = t.now()
}

// Endpoint returns a copy of one endpoint's health state.
func (t *Tracker) Endpoint(endpoint string) (EndpointHealth, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, ok := t.endpoints[endpoint]
	if !ok {
		return EndpointHealth{}, false
	}
	return *h, true
}

// Snapshot returns a copy of all observed endpoint states.
func (t *Tracker) Snapshot() map[string]EndpointHealth {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot := make(map[string]EndpointHealth, len(t.endpoints))
	for name, h := range t.endpoints {
		snapshot[name] = *h
	}
	return snapshot
}

// Overall returns the worst status across observed endpoints. A
// tracker with no observations is healthy.
func (t *Tracker) Overall() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	overall := StatusHealthy
	for _, h := range t.endpoints {
		switch h.Status() {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			overall = StatusDegraded
		}
	}
	return overall
}

// endpoint returns the mutable state for a name. Callers hold t.mu.
func (t *Tracker) endpoint(name string) *EndpointHealth {
	h, ok := t.endpoints[name]
	if !ok {
		h = &EndpointHealth{Endpoint: name}
		t.endpoints[name] = h
	}
	return h
}
