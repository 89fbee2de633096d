package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/joestump/ideaboard/internal/service"
)

// writeError writes a JSON error response with the given HTTP status code.
func (h *ideasAPIHandler) writeError(w http.ResponseWriter, status int, message, code string) {
	h.writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// writeServiceError maps a service error to 400 or 404 and anything else to 500.
func (h *ideasAPIHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch kind := service.KindOf(err); kind {
	case service.KindValidation:
		h.writeError(w, http.StatusBadRequest, err.Error(), kind.Code())
	case service.KindNotFound:
		h.writeError(w, http.StatusNotFound, err.Error(), kind.Code())
	default:
		h.writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
	}
}

// writeJSON writes a JSON response with the given HTTP status code. The
// status line is already sent when encoding fails, so the failure is only logged.
func (h *ideasAPIHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn("write response", zap.Error(err))
	}
}
