package provider

import (
	"errors"
	"testing"
)

func TestDegradable(t *testing.T) {
	tests := []struct {
		name       string
		errorClass ErrorClass
		expected   bool
	}{
		{
			name:       "transport error degrades",
			errorClass: ErrorClassTransport,
			expected:   true,
		},
		{
			name:       "provider error degrades",
			errorClass: ErrorClassProvider,
			expected:   true,
		},
		{
			name:       "malformed response degrades",
			errorClass: ErrorClassMalformed,
			expected:   true,
		},
		{
			name:       "invalid request surfaces",
			errorClass: ErrorClassInvalidRequest,
			expected:   false,
		},
		{
			name:       "unknown class degrades",
			errorClass: "",
			expected:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := degradable(tt.errorClass)
			if result != tt.expected {
				t.Errorf("degradable(%q) = %v, want %v", tt.errorClass, result, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		provErr  *Error
		expected string
	}{
		{
			name: "error with wrapped error",
			provErr: &Error{
				StatusCode: 500,
				Class:      ErrorClassTransport,
				Endpoint:   "SearchFunds",
				Message:    "request failed",
				Err:        errors.New("connection refused"),
			},
			expected: "provider transport error (SearchFunds): request failed: connection refused",
		},
		{
			name: "error without wrapped error",
			provErr: &Error{
				Class:    ErrorClassProvider,
				Endpoint: "GetFundDiagnosis",
				Message:  "fund not covered",
				Err:      nil,
			},
			expected: "provider provider error (GetFundDiagnosis): fund not covered",
		},
		{
			name: "invalid request error",
			provErr: &Error{
				Class:    ErrorClassInvalidRequest,
				Endpoint: "SearchFunds",
				Message:  "invalid request",
				Err:      nil,
			},
			expected: "provider invalid_request error (SearchFunds): invalid request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.provErr.Error()
			if result != tt.expected {
				t.Errorf("Error() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	wrappedErr := errors.New("wrapped error")
	provErr := &Error{
		Class:    ErrorClassTransport,
		Endpoint: "SearchFunds",
		Message:  "request failed",
		Err:      wrappedErr,
	}

	unwrapped := provErr.Unwrap()
	if unwrapped != wrappedErr {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, wrappedErr)
	}

	// Test errors.Is
	if !errors.Is(provErr, wrappedErr) {
		t.Error("errors.Is should work with wrapped error")
	}
}

func TestError_UnwrapNil(t *testing.T) {
	provErr := &Error{
		Class:    ErrorClassProvider,
		Endpoint: "GetFundDiagnosis",
		Message:  "fund not covered",
		Err:      nil,
	}

	unwrapped := provErr.Unwrap()
	if unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}

func TestInvalidRequest(t *testing.T) {
	cause := errors.New("keyword is required")
	provErr := invalidRequest("SearchFunds", cause)

	if provErr.Class != ErrorClassInvalidRequest {
		t.Errorf("Class = %v, want %v", provErr.Class, ErrorClassInvalidRequest)
	}
	if provErr.Endpoint != "SearchFunds" {
		t.Errorf("Endpoint = %q, want %q", provErr.Endpoint, "SearchFunds")
	}
	if !errors.Is(provErr, cause) {
		t.Error("invalidRequest should wrap the validation cause")
	}
}
