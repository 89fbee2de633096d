package handler

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/joestump/ideaboard/docs/swagger"
	"github.com/joestump/ideaboard/internal/api"
	"github.com/joestump/ideaboard/internal/logging"
	"github.com/joestump/ideaboard/internal/service"
	"github.com/joestump/ideaboard/internal/store"
	"github.com/joestump/ideaboard/web"
)

// GraphQLPath is where the GraphQL endpoint and its explorer are mounted.
const GraphQLPath = "/graphql"

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	Service     *service.Service
	GraphQL     http.Handler
	Health      store.Pinger
	Logger      *zap.Logger
	CORSOrigins []string
}

// NewRouter assembles the full chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(log.Named("http")))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Static assets (embedded). Use fs.Sub so the file server sees
	// app.js and app.css directly, not static/... paths.
	staticSub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("failed to sub static FS: " + err.Error())
	}
	r.Handle("/static/*", http.StripPrefix("/static", http.FileServerFS(staticSub)))

	health := NewHealthHandler(deps.Health, log.Named("health"))
	r.Get("/health", health.Health)
	r.Get("/ready", health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	pages := NewPagesHandler(GraphQLPath)
	r.Get("/", pages.Board)
	r.Get(GraphQLPath, pages.GraphiQL)
	r.Method(http.MethodPost, GraphQLPath, deps.GraphQL)

	r.Get("/api/docs/*", httpSwagger.WrapHandler)

	apiRouter := api.NewAPIRouter(api.Deps{
		Service: deps.Service,
		Logger:  log,
	})
	r.Mount("/api/v1", apiRouter)

	return r
}
