package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/quantedu/fundboard/pkg/cache"
	"github.com/quantedu/fundboard/pkg/fallback"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public fund data gateway.
const DefaultBaseURL = "https://stargate.yingmi.com/mcp"

// Client is the fund data gateway client. It fronts every provider
// call with fingerprint-keyed TTL caching and absorbs transient
// failures into degraded fallback results.
type Client struct {
	httpClient *http.Client
	store      cache.Store
	policy     cache.Policy
	resolver   *fallback.Resolver
	limiter    *rate.Limiter
	health     *Tracker
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the provider gateway root, without trailing slash
	BaseURL string

	// APIKey is sent as the apiKey header on every request (REQUIRED)
	APIKey string

	// Timeout bounds one fetch end to end, limiter wait included
	Timeout time.Duration

	// Rate limiting for outbound requests
	RateLimit rate.Limit
	Burst     int

	// MaxConcurrency bounds parallel chunk fetches in batch helpers
	MaxConcurrency int

	// Store is the response cache backend; nil selects an in-process store
	Store cache.Store

	// Policy maps endpoint TTL classes to durations
	Policy cache.Policy
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(apiKey string) Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		APIKey:         apiKey,
		Timeout:        10 * time.Second,
		RateLimit:      10,
		Burst:          5,
		MaxConcurrency: 5,
		Policy:         cache.DefaultPolicy(),
	}
}

// New creates a new gateway client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive (got %v)", cfg.Timeout)
	}

	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 5
	}

	store := cfg.Store
	if store == nil {
		store = cache.NewMemoryStore()
	}

	// Initialize logger
	logger := log.With().Str("component", "fund-provider").Logger()

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		store:    store,
		policy:   cfg.Policy,
		resolver: fallback.NewResolver(),
		limiter:  rate.NewLimiter(cfg.RateLimit, cfg.Burst),
		health:   NewTracker(),
		config:   cfg,
		logger:   logger,
	}, nil
}

// Fetch resolves an endpoint call through the cache. Transient
// failures (network, provider failure envelopes, undecodable bodies)
// come back as degraded results, never as errors; only structurally
// invalid requests return a non-nil error, before any network call.
func (c *Client) Fetch(ctx context.Context, endpoint string, params map[string]any) (Result, error) {
	return c.fetch(ctx, endpoint, params, true)
}

// Refresh is Fetch without the cache read: it always calls the
// provider and, on success, overwrites the cached entry.
func (c *Client) Refresh(ctx context.Context, endpoint string, params map[string]any) (Result, error) {
	return c.fetch(ctx, endpoint, params, false)
}

// fetch orchestrates one provider call: validate, cache check, network
// call, cache write or fallback.
func (c *Client) fetch(ctx context.Context, endpoint string, params map[string]any, useCache bool) (Result, error) {
	startTime := time.Now()
	defer func() {
		RequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	// Step 1: Validate before touching cache or network
	body, err := encodeBody(endpoint, params)
	if err != nil {
		ProviderErrors.WithLabelValues(string(ErrorClassInvalidRequest)).Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("Request rejected")
		return Result{}, err
	}

	key := cache.Key{Endpoint: endpoint, Params: params}

	// Step 2: Check cache
	if useCache {
		entry, err := c.store.Get(ctx, key)
		if err == nil {
			c.logger.Debug().
				Str("endpoint", endpoint).
				Str("fingerprint", key.String()).
				Msg("Cache hit")
			ProviderRequests.WithLabelValues(endpoint, "cache").Inc()
			return Result{
				Data:      entry.Payload,
				Source:    SourceCache,
				Endpoint:  endpoint,
				FetchedAt: entry.FetchedAt,
			}, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			// A broken cache backend degrades to live calls, not to failure
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Cache get error")
		}
	}

	// Step 3: Call the provider
	payload, perr := c.call(ctx, endpoint, body)
	fetchedAt := time.Now()

	if perr != nil {
		c.health.RecordFailure(endpoint)
		ProviderErrors.WithLabelValues(string(perr.Class)).Inc()

		if !degradable(perr.Class) {
			return Result{}, perr
		}

		c.logger.Warn().
			Str("endpoint", endpoint).
			Str("error_class", string(perr.Class)).
			Err(perr).
			Msg("Provider call failed, serving fallback")

		ProviderRequests.WithLabelValues(endpoint, "fallback").Inc()
		DegradedResults.WithLabelValues(endpoint).Inc()
		return Result{
			Data:      c.resolver.Resolve(endpoint, params),
			Degraded:  true,
			Source:    SourceFallback,
			Endpoint:  endpoint,
			FetchedAt: fetchedAt,
			Message:   perr.Message,
		}, nil
	}

	c.health.RecordSuccess(endpoint)

	// Step 4: Overwrite cache unconditionally on success
	entry := &cache.Entry{
		Payload:   payload,
		FetchedAt: fetchedAt,
		TTL:       c.policy.For(ClassFor(endpoint)),
	}
	if err := c.store.Set(ctx, key, entry); err != nil {
		// A failed cache write never spoils a live payload
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Cache set error")
	} else {
		c.logger.Debug().
			Str("endpoint", endpoint).
			Dur("ttl", entry.TTL).
			Msg("Cached response")
	}

	ProviderRequests.WithLabelValues(endpoint, "live").Inc()
	return Result{
		Data:      payload,
		Source:    SourceLive,
		Endpoint:  endpoint,
		FetchedAt: fetchedAt,
	}, nil
}

// call performs one rate-limited POST to the provider and extracts the
// envelope data. The context deadline spans limiter wait and network
// round trip; there is no retry.
func (c *Client) call(ctx context.Context, endpoint string, body []byte) (json.RawMessage, *Error) {
	callCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	if err := c.limiter.Wait(callCtx); err != nil {
		return nil, &Error{
			Class:    ErrorClassTransport,
			Endpoint: endpoint,
			Message:  "request rate limited",
			Err:      err,
		}
	}

	url := c.config.BaseURL + "/" + endpoint
	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{
			Class:    ErrorClassTransport,
			Endpoint: endpoint,
			Message:  "request construction failed",
			Err:      err,
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apiKey", c.config.APIKey)

	c.logger.Debug().
		Str("endpoint", endpoint).
		Msg("Executing provider request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{
			Class:    ErrorClassTransport,
			Endpoint: endpoint,
			Message:  "request failed",
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			StatusCode: resp.StatusCode,
			Class:      ErrorClassTransport,
			Endpoint:   endpoint,
			Message:    resp.Status,
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			Class:    ErrorClassTransport,
			Endpoint: endpoint,
			Message:  "response read failed",
			Err:      err,
		}
	}

	return parseEnvelope(endpoint, raw)
}

// encodeBody marshals the request parameters. Nil params encode as an
// empty object; unknown endpoints and unmarshalable values reject the
// request.
func encodeBody(endpoint string, params map[string]any) ([]byte, error) {
	if endpoint == "" {
		return nil, invalidRequest(endpoint, fmt.Errorf("endpoint is required"))
	}
	if !Known(endpoint) {
		return nil, invalidRequest(endpoint, fmt.Errorf("%w: %q", ErrUnknownEndpoint, endpoint))
	}
	if params == nil {
		params = map[string]any{}
	}
	body, err := json.Marshal(params)
	if err != nil {
		return nil, invalidRequest(endpoint, fmt.Errorf("unencodable params: %w", err))
	}
	return body, nil
}

// Health returns the per-endpoint health tracker. It observes outcomes
// only and never gates requests.
func (c *Client) Health() *Tracker {
	return c.health
}

// Store returns the cache backend (for flushing and inspection).
func (c *Client) Store() cache.Store {
	return c.store
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
