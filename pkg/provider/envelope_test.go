package provider

import (
	"testing"
)

func TestParseEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		expectData string
		errorClass ErrorClass
		errorMsg   string
	}{
		{
			name:       "success with object data",
			body:       `{"success": true, "message": "ok", "data": {"fundCode": "000001"}}`,
			expectData: `{"fundCode": "000001"}`,
		},
		{
			name:       "success with list data",
			body:       `{"success": true, "message": "ok", "data": [1, 2, 3]}`,
			expectData: `[1, 2, 3]`,
		},
		{
			name:       "failure with message",
			body:       `{"success": false, "message": "fund not covered", "data": null}`,
			errorClass: ErrorClassProvider,
			errorMsg:   "fund not covered",
		},
		{
			name:       "failure without message",
			body:       `{"success": false}`,
			errorClass: ErrorClassProvider,
			errorMsg:   "provider reported failure",
		},
		{
			name:       "garbage body",
			body:       `<html>gateway maintenance</html>`,
			errorClass: ErrorClassMalformed,
			errorMsg:   "undecodable provider response",
		},
		{
			name:       "success without data",
			body:       `{"success": true, "message": "ok"}`,
			errorClass: ErrorClassMalformed,
			errorMsg:   "success envelope without data",
		},
		{
			name:       "success with null data",
			body:       `{"success": true, "message": "ok", "data": null}`,
			errorClass: ErrorClassMalformed,
			errorMsg:   "success envelope without data",
		},
		{
			name:       "empty body",
			body:       ``,
			errorClass: ErrorClassMalformed,
			errorMsg:   "undecodable provider response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, perr := parseEnvelope("SearchFunds", []byte(tt.body))

			if tt.errorClass != "" {
				if perr == nil {
					t.Fatal("Expected error but got nil")
				}
				if perr.Class != tt.errorClass {
					t.Errorf("Class = %v, want %v", perr.Class, tt.errorClass)
				}
				if perr.Message != tt.errorMsg {
					t.Errorf("Message = %q, want %q", perr.Message, tt.errorMsg)
				}
				if perr.Endpoint != "SearchFunds" {
					t.Errorf("Endpoint = %q, want %q", perr.Endpoint, "SearchFunds")
				}
				return
			}

			if perr != nil {
				t.Fatalf("Unexpected error: %v", perr)
			}
			if string(data) != tt.expectData {
				t.Errorf("data = %s, want %s", data, tt.expectData)
			}
		})
	}
}
