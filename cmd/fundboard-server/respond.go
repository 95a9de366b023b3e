package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/quantedu/fundboard/pkg/provider"
)

// envelope is the response shape of every API endpoint. It mirrors the
// provider wire format so browser code reads one shape end to end; data
// endpoints additionally carry the degradation flag and payload origin.
type envelope struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Data      any       `json:"data,omitempty"`
	Degraded  bool      `json:"degraded"`
	Source    string    `json:"source,omitempty"`
	FetchedAt time.Time `json:"fetchedAt,omitzero"`
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeData writes a successful response for locally produced payloads.
func (s *server) writeData(w http.ResponseWriter, status int, data any) {
	s.writeJSON(w, status, envelope{Success: true, Data: data})
}

// writeResult writes a provider fetch outcome. Degraded results stay
// HTTP 200: the payload is a usable substitute, not an error.
func (s *server) writeResult(w http.ResponseWriter, res provider.Result) {
	s.writeJSON(w, http.StatusOK, envelope{
		Success:   true,
		Message:   res.Message,
		Data:      res.Data,
		Degraded:  res.Degraded,
		Source:    string(res.Source),
		FetchedAt: res.FetchedAt,
	})
}

func (s *server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, envelope{Success: false, Message: message})
}

// writeProviderError maps a provider call failure to an HTTP status.
// Only invalid requests escape Fetch as errors; anything else that
// surfaces here is unexpected and reads as a bad gateway.
func (s *server) writeProviderError(w http.ResponseWriter, err error) {
	var perr *provider.Error
	if errors.As(err, &perr) && perr.Class == provider.ErrorClassInvalidRequest {
		s.writeError(w, http.StatusBadRequest, perr.Message)
		return
	}
	s.logger.Error().Err(err).Msg("Provider call failed")
	s.writeError(w, http.StatusBadGateway, "provider request failed")
}

// decodeJSON reads a request body into v. Unknown fields are rejected
// so typos in client payloads fail loudly instead of silently.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
