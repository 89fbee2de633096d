package graph

import (
	"encoding/json"
	"net/http"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"

	"github.com/joestump/ideaboard/internal/metrics"
)

// maxBodyBytes bounds a single GraphQL request document.
const maxBodyBytes = 1 << 20

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves POST /graphql. Execution errors are reported in the
// response envelope with status 200; only undecodable requests get a 400.
type Handler struct {
	schema *graphql.Schema
	log    *zap.Logger
}

// NewHandler wraps a parsed schema.
func NewHandler(schema *graphql.Schema, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{schema: schema, log: log.Named("graphql")}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.writeResponse(w, http.StatusBadRequest, map[string]interface{}{
			"errors": []map[string]string{{"message": "invalid request body"}},
		})
		return
	}

	start := time.Now()
	resp := h.schema.Exec(r.Context(), req.Query, req.OperationName, req.Variables)
	metrics.GraphQLRequestDuration.Observe(time.Since(start).Seconds())

	for _, qe := range resp.Errors {
		if qe.ResolverError == nil {
			h.log.Debug("graphql query error", zap.String("message", qe.Message))
			continue
		}
		if ge, ok := qe.ResolverError.(*gqlError); ok && ge.code == "INTERNAL_ERROR" {
			h.log.Error("resolver failed", zap.Error(ge.err), zap.Any("path", qe.Path))
		}
	}

	h.writeResponse(w, http.StatusOK, resp)
}

func (h *Handler) writeResponse(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn("write response", zap.Error(err))
	}
}
