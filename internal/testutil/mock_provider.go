// Package testutil provides testing utilities for the fund gateway client.
package testutil

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// MockResponse defines the behavior of a mock provider endpoint.
type MockResponse struct {
	StatusCode int
	Body       string
	Delay      time.Duration
}

// MockProvider is a configurable mock fund data gateway for testing.
// It routes by the final path segment, mirroring the real gateway's
// baseURL/endpoint scheme, and counts requests per endpoint so tests
// can assert how many network calls a fetch actually made.
type MockProvider struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	requestCounts map[string]int
	lastBodies    map[string][]byte
	lastHeader    http.Header
}

// NewMockProvider creates a new mock gateway server.
func NewMockProvider() *MockProvider {
	mock := &MockProvider{
		handlers:      make(map[string]func(w http.ResponseWriter, r *http.Request)),
		requestCounts: make(map[string]int),
		lastBodies:    make(map[string][]byte),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		endpoint := strings.TrimPrefix(r.URL.Path, "/")
		body, _ := io.ReadAll(r.Body)

		mock.mu.Lock()
		mock.requestCounts[endpoint]++
		mock.lastBodies[endpoint] = body
		mock.lastHeader = r.Header.Clone()
		mock.mu.Unlock()

		// Check for custom handler
		mock.mu.RLock()
		handler, exists := mock.handlers[endpoint]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		// Default handler
		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock gateway base URL.
func (m *MockProvider) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockProvider) Close() {
	m.server.Close()
}

// Reset clears all tracking counters and custom handlers.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = make(map[string]func(w http.ResponseWriter, r *http.Request))
	m.requestCounts = make(map[string]int)
	m.lastBodies = make(map[string][]byte)
	m.lastHeader = nil
}

// SetHandler sets a custom handler for an endpoint.
func (m *MockProvider) SetHandler(endpoint string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[endpoint] = handler
}

// SetResponse configures a static response for an endpoint.
func (m *MockProvider) SetResponse(endpoint string, resp MockResponse) {
	m.SetHandler(endpoint, func(w http.ResponseWriter, r *http.Request) {
		// Add delay if specified
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// RequestCount returns the number of requests made to one endpoint.
func (m *MockProvider) RequestCount(endpoint string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCounts[endpoint]
}

// TotalRequests returns the number of requests made to all endpoints.
func (m *MockProvider) TotalRequests() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, n := range m.requestCounts {
		total += n
	}
	return total
}

// LastRequestBody returns the most recent request body sent to an
// endpoint, or nil.
func (m *MockProvider) LastRequestBody(endpoint string) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastBodies[endpoint]
}

// LastRequestHeader returns the headers of the most recent request.
func (m *MockProvider) LastRequestHeader() http.Header {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastHeader
}

// defaultHandler answers with an empty success envelope.
func (m *MockProvider) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"success": true, "message": "ok", "data": {}}`))
}

// NewSuccessResponse creates a success envelope around the given data.
func NewSuccessResponse(data string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       fmt.Sprintf(`{"success": true, "message": "ok", "data": %s}`, data),
	}
}

// NewFailureResponse creates a well-formed failure envelope.
func NewFailureResponse(message string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       fmt.Sprintf(`{"success": false, "message": %q, "data": null}`, message),
	}
}

// NewGarbageResponse creates a body that is not a provider envelope.
func NewGarbageResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `<html>gateway maintenance</html>`,
	}
}

// NewEmptySuccessResponse creates a success envelope without data.
func NewEmptySuccessResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{"success": true, "message": "ok"}`,
	}
}

// NewSlowResponse creates a success envelope delivered after a delay.
func NewSlowResponse(data string, delay time.Duration) MockResponse {
	resp := NewSuccessResponse(data)
	resp.Delay = delay
	return resp
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "internal server error"}`,
	}
}
