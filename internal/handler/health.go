package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/joestump/ideaboard/internal/build"
	"github.com/joestump/ideaboard/internal/store"
)

const readyTimeout = 2 * time.Second

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	pinger store.Pinger
	log    *zap.Logger
}

// NewHealthHandler creates a HealthHandler. A nil pinger is always ready.
func NewHealthHandler(p store.Pinger, log *zap.Logger) *HealthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &HealthHandler{pinger: p, log: log}
}

type healthResponse struct {
	Status string      `json:"status"`
	Build  *build.Info `json:"build,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Health reports liveness. It never touches the store.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	info := build.Current()
	h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: &info})
}

// Ready pings the store and reports 503 when it is unreachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := h.pinger.Ping(ctx); err != nil {
			h.log.Warn("readiness check failed", zap.Error(err))
			h.writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Error: "store unreachable"})
			return
		}
	}
	h.writeJSON(w, http.StatusOK, healthResponse{Status: "ready"})
}

func (h *HealthHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn("write response", zap.Error(err))
	}
}
