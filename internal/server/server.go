// Package server wires the HTTP surface and runs it until the context ends.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/atlascene/layer-composer/internal/assets"
	"github.com/atlascene/layer-composer/internal/config"
	"github.com/atlascene/layer-composer/internal/health"
	"github.com/atlascene/layer-composer/internal/middleware"
	"github.com/atlascene/layer-composer/internal/router"
)

type Deps struct {
	Handler   *router.Handler
	Catalog   *assets.Catalog
	Readiness map[string]health.Checker
}

// Run serves until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, cfg config.Config, log *zerolog.Logger, deps Deps) error {
	r := chi.NewRouter()
	r.Use(middleware.Recover(log))
	r.Use(middleware.Logging(log))
	r.Use(middleware.CORS())

	r.Get("/healthz", health.Liveness())
	r.Get("/readyz", health.Readiness(deps.Readiness))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Post("/scenes/{sceneID}/layers", deps.Handler.AddLayer)
	if deps.Catalog != nil {
		r.Get("/assets", deps.Handler.ListAssets(deps.Catalog))
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("http listen")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
