package main

import (
	"net/http"
	"slices"

	"github.com/quantedu/fundboard/pkg/provider"
)

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady reports readiness. The database must answer; the
// provider only colors the report, since cached and fallback payloads
// keep the dashboard usable while it is down.
func (s *server) handleReady(w http.ResponseWriter, r *http.Request) {
	report := map[string]string{
		"database": "ok",
		"provider": s.gateway.Health().Overall(),
	}

	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Error().Err(err).Msg("Database ping failed")
		report["database"] = "unreachable"
		s.writeJSON(w, http.StatusServiceUnavailable, envelope{
			Success: false,
			Message: "database unreachable",
			Data:    report,
		})
		return
	}

	s.writeData(w, http.StatusOK, report)
}

func (s *server) handleCacheFlush(w http.ResponseWriter, r *http.Request) {
	if err := s.gateway.Store().Flush(r.Context()); err != nil {
		s.logger.Error().Err(err).Msg("Cache flush failed")
		s.writeError(w, http.StatusInternalServerError, "failed to flush cache")
		return
	}

	s.logger.Info().Str("admin", currentUser(r).Username).Msg("Cache flushed")
	s.writeData(w, http.StatusOK, map[string]string{"status": "flushed"})
}

// handleRefresh forces a live fetch for one endpoint, overwriting the
// cached entry on success.
func (s *server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Endpoint string         `json:"endpoint"`
		Params   map[string]any `json:"params"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !slices.Contains(provider.Endpoints(), req.Endpoint) {
		s.writeError(w, http.StatusBadRequest, "unknown endpoint")
		return
	}

	res, err := s.gateway.Refresh(r.Context(), req.Endpoint, req.Params)
	if err != nil {
		s.writeProviderError(w, err)
		return
	}

	s.logger.Info().
		Str("admin", currentUser(r).Username).
		Str("endpoint", req.Endpoint).
		Bool("degraded", res.Degraded).
		Msg("Endpoint refreshed")
	s.writeResult(w, res)
}

func (s *server) handleProviderHealth(w http.ResponseWriter, r *http.Request) {
	tracker := s.gateway.Health()
	s.writeData(w, http.StatusOK, map[string]any{
		"overall":   tracker.Overall(),
		"endpoints": tracker.Snapshot(),
	})
}
