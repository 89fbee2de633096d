package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joestump/ideaboard/internal/build"
	"github.com/joestump/ideaboard/internal/config"
	"github.com/joestump/ideaboard/internal/db"
	"github.com/joestump/ideaboard/internal/graph"
	"github.com/joestump/ideaboard/internal/handler"
	"github.com/joestump/ideaboard/internal/metrics"
	"github.com/joestump/ideaboard/internal/service"
	"github.com/joestump/ideaboard/internal/store"
)

const shutdownTimeout = 10 * time.Second

// backingStore is what serve needs from a store: the operations plus a
// readiness ping.
type backingStore interface {
	store.IdeaStore
	store.Pinger
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ideas, closeStore, err := openStore(cfg, log)
			if err != nil {
				return err
			}
			defer closeStore()

			svc := service.New(ideas, log)
			schema, err := graph.NewSchema(svc)
			if err != nil {
				return fmt.Errorf("parse graphql schema: %w", err)
			}

			router := handler.NewRouter(handler.Deps{
				Service:     svc,
				GraphQL:     graph.NewHandler(schema, log),
				Health:      ideas,
				Logger:      log,
				CORSOrigins: cfg.CORS.Origins,
			})

			srv := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info("listening",
					zap.String("addr", cfg.HTTP.Addr),
					zap.String("store", cfg.Store.Backend),
					zap.String("version", build.Version),
				)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}
}

// openStore builds the configured backend. For SQL it runs migrations first.
func openStore(cfg *config.Config, log *zap.Logger) (backingStore, func(), error) {
	switch cfg.Store.Backend {
	case "memory":
		log.Warn("using in-memory store; ideas are lost on restart")
		return store.NewMemoryStore(), func() {}, nil

	case "redis":
		rs, err := store.NewRedisStore(cfg.Redis.URL)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { _ = rs.Close() }, nil

	default:
		database, err := openDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(database, cfg.DB.Driver, log); err != nil {
			_ = database.Close()
			return nil, nil, err
		}
		ss := store.NewSQLStore(database)
		if n, err := ss.Count(context.Background()); err == nil {
			metrics.IdeasTotal.Set(float64(n))
		}
		return ss, func() { _ = database.Close() }, nil
	}
}
