package provider

import (
	"bytes"
	"encoding/json"
)

// envelope is the provider's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// parseEnvelope decodes a response body into the provider envelope and
// extracts the data payload. Failures are classified: undecodable
// bodies are malformed, well-formed failure envelopes are provider
// errors. A success envelope without data is treated as malformed
// rather than silently returning nothing.
func parseEnvelope(endpoint string, body []byte) (json.RawMessage, *Error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &Error{
			Class:    ErrorClassMalformed,
			Endpoint: endpoint,
			Message:  "undecodable provider response",
			Err:      err,
		}
	}

	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "provider reported failure"
		}
		return nil, &Error{
			Class:    ErrorClassProvider,
			Endpoint: endpoint,
			Message:  msg,
		}
	}

	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil, &Error{
			Class:    ErrorClassMalformed,
			Endpoint: endpoint,
			Message:  "success envelope without data",
		}
	}

	return env.Data, nil
}
