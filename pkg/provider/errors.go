package provider

import (
	"errors"
	"fmt"
)

// ErrUnknownEndpoint rejects fetches against endpoint names the
// provider does not serve.
var ErrUnknownEndpoint = errors.New("provider: unknown endpoint")

// ErrorClass classifies provider call failures.
type ErrorClass string

const (
	// ErrorClassTransport covers network failures, timeouts, rate limiter
	// denials, and non-2xx HTTP responses.
	ErrorClassTransport ErrorClass = "transport"

	// ErrorClassProvider covers well-formed envelopes reporting success=false.
	ErrorClassProvider ErrorClass = "provider"

	// ErrorClassMalformed covers response bodies that cannot be decoded
	// into the provider envelope.
	ErrorClassMalformed ErrorClass = "malformed"

	// ErrorClassInvalidRequest covers requests rejected before any
	// network call is attempted.
	ErrorClassInvalidRequest ErrorClass = "invalid_request"
)

// Error represents a provider call failure with classification context.
type Error struct {
	StatusCode int
	Class      ErrorClass
	Endpoint   string
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider %s error (%s): %s: %v",
			e.Class, e.Endpoint, e.Message, e.Err)
	}
	return fmt.Sprintf("provider %s error (%s): %s",
		e.Class, e.Endpoint, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// degradable determines if a failure is absorbed into a fallback result
// or surfaced to the caller.
func degradable(class ErrorClass) bool {
	switch class {
	case ErrorClassInvalidRequest:
		// Structurally invalid requests cannot be helped by a fallback
		return false
	case ErrorClassTransport, ErrorClassProvider, ErrorClassMalformed:
		return true
	default:
		return true
	}
}

// invalidRequest builds the hard error returned for rejected requests.
func invalidRequest(endpoint string, err error) *Error {
	return &Error{
		Class:    ErrorClassInvalidRequest,
		Endpoint: endpoint,
		Message:  "invalid request",
		Err:      err,
	}
}
