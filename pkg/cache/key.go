package cache

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Key identifies a cached provider response by request shape.
type Key struct {
	// Endpoint is the provider endpoint name (e.g., "SearchFunds")
	Endpoint string

	// Params are the request parameters sent in the JSON body
	Params map[string]any
}

// String generates a deterministic fingerprint string.
// Parameter keys are sorted, so two requests with identical key/value
// pairs in different insertion order produce the same fingerprint.
// Format: fund:endpoint:param1=val1:param2=val2
//
// Example:
//
//	fund:SearchFunds:keyword="ABC":page=0:size=20
func (k Key) String() string {
	parts := []string{"fund"}

	endpoint := strings.TrimSpace(k.Endpoint)
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	// Add params (sorted for determinism)
	if len(k.Params) > 0 {
		paramKeys := make([]string, 0, len(k.Params))
		for key := range k.Params {
			paramKeys = append(paramKeys, key)
		}
		sort.Strings(paramKeys)

		for _, key := range paramKeys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, canonicalValue(k.Params[key])))
		}
	}

	return strings.Join(parts, ":")
}

// canonicalValue serializes a parameter value deterministically. JSON is
// used because encoding/json emits map keys in sorted order, which keeps
// nested mappings (e.g. holdings lists with weight maps) stable.
func canonicalValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
