package httpapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type statusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.ready.Ready(r.Context()); err != nil {
		s.logger.Warn("not ready", zap.Error(err))
		s.respondJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "not_ready", Error: err.Error()})
		return
	}

	s.respondJSON(w, http.StatusOK, statusResponse{Status: "ready"})
}
