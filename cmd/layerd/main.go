package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/atlascene/layer-composer/internal/assets"
	"github.com/atlascene/layer-composer/internal/config"
	"github.com/atlascene/layer-composer/internal/events"
	"github.com/atlascene/layer-composer/internal/health"
	"github.com/atlascene/layer-composer/internal/httpclient"
	"github.com/atlascene/layer-composer/internal/logger"
	"github.com/atlascene/layer-composer/internal/observability"
	"github.com/atlascene/layer-composer/internal/router"
	"github.com/atlascene/layer-composer/internal/server"
	"github.com/atlascene/layer-composer/internal/submit"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.FromEnv()

	log := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   cfg.LogConsole,
		Component: "layerd",
	}, os.Stdout)

	observability.ExposeBuildInfo(Version)
	log.Info().
		Str("addr", cfg.Addr).
		Str("version", Version).
		Str("layer_service", cfg.LayerServiceURL).
		Msg("starting layerd")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hc := httpclient.NewOutbound(cfg.SubmitTimeout)

	submitter, err := submit.New(cfg.LayerServiceURL, hc, &log)
	if err != nil {
		log.Error().Err(err).Msg("layer service client")
		return 1
	}

	cache, err := assets.NewCache(ctx, cfg.RedisAddr, cfg.AssetCacheSize, cfg.AssetCacheTTL, cfg.CacheOpTimeout)
	if err != nil {
		// the gateway works without the shared cache tier
		log.Warn().Err(err).Msg("asset cache unavailable, running uncached")
		cache = nil
	} else {
		defer func() { _ = cache.Close() }()
	}

	catalog, err := assets.NewCatalog(cfg.AssetServiceURL, hc, cache, &log)
	if err != nil {
		log.Error().Err(err).Msg("asset service client")
		return 1
	}

	readiness := map[string]health.Checker{}
	if cache != nil {
		readiness["redis"] = func() error {
			return cache.Ping(context.Background())
		}
	}

	var publisher router.EventPublisher
	if cfg.Events.Enabled {
		p, err := events.NewPublisher(cfg.Events.Brokers, cfg.Events.Topic, &log)
		if err != nil {
			log.Error().Err(err).Msg("event publisher")
			return 1
		}
		defer func() { _ = p.Close() }()
		publisher = p
	}

	handler := router.NewHandler(&log, submitter, catalog, publisher, cfg.Events.H3Res)

	err = server.Run(ctx, cfg, &log, server.Deps{
		Handler:   handler,
		Catalog:   catalog,
		Readiness: readiness,
	})
	if err != nil {
		log.Error().Err(err).Msg("server failed")
		return 1
	}
	return 0
}
