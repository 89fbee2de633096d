package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/joestump/ideaboard/internal/service"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Service *service.Service
	Logger  *zap.Logger
}

// NewAPIRouter creates a chi sub-router for /api/v1.
// All routes return application/json.
func NewAPIRouter(deps Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(jsonContentType)

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	registerIdeaRoutes(r, deps.Service, log.Named("api"))

	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
