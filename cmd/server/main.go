// Marquee - Media Metadata Cache and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package main is the entry point for the Marquee server.
//
// Marquee sits in front of a movie/TV metadata provider, caches its
// responses, and builds recommendation lists from a local catalog and each
// user's viewing history.
//
// # Startup Order
//
//  1. Configuration (koanf: defaults, config.yaml, environment)
//  2. Metadata cache gateway over the provider client
//  3. Id mapping table and catalog source
//  4. Recommendation engine
//  5. Background refresh jobs (when JOBS_ENABLED)
//  6. HTTP API
//
// Everything long-running is added to the supervisor tree. SIGINT and
// SIGTERM cancel the tree and drain the HTTP server.
//
// # Example
//
//	export PROVIDER_ACCESS_TOKEN=...
//	export CATALOG_PATH=./catalog.yaml
//	./marquee
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

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/idmap"
	"github.com/tomtom215/marquee/internal/jobs"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metacache"
	"github.com/tomtom215/marquee/internal/normalize"
	"github.com/tomtom215/marquee/internal/provider"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if err := run(cfg); err != nil {
		logging.Error().Err(err).Msg("Marquee stopped with error")
		os.Exit(1)
	}
	logging.Info().Msg("Application stopped gracefully")
}

//nolint:gocyclo // sequential wiring
func run(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logging.Info().
		Str("cache_backend", cfg.Cache.Backend).
		Str("catalog_source", cfg.Catalog.Source).
		Bool("jobs_enabled", cfg.Jobs.Enabled).
		Msg("Starting Marquee")
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin in production")
	}

	// === METADATA CACHE ===

	client := provider.NewClient(&cfg.Provider)
	gateway := metacache.NewGateway(metacache.Config{
		TTL:             cfg.Cache.TTL,
		StatsSampleSize: cfg.Cache.StatsSampleSize,
	}, client, metacache.Open(&cfg.Cache))
	defer func() {
		if err := gateway.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing metadata cache")
		}
	}()
	svc := provider.NewService(gateway, client.Locales())

	// === CATALOG ===

	idStore, err := idmap.Open(cfg.Catalog.IDMapPath)
	if err != nil {
		return fmt.Errorf("open id mapping table: %w", err)
	}
	defer func() {
		if err := idStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing id mapping table")
		}
	}()
	resolver := idmap.NewResolver(idStore, cfg.Recommend.LegacyIDFallback)
	if cfg.Recommend.LegacyIDFallback {
		logging.Warn().Msg("Legacy id mapping fallback enabled; unmapped ids resolve to arbitrary catalog items")
	}

	src, err := catalog.Open(ctx, &cfg.Catalog)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog source")
		}
	}()
	catalogCache := catalog.NewCache(src)

	// === RECOMMENDATIONS ===

	engine, err := recommend.NewEngine(recommend.ConfigFrom(&cfg.Recommend), svc, resolver)
	if err != nil {
		return fmt.Errorf("create recommendation engine: %w", err)
	}

	// === SUPERVISOR TREE ===

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddDataService(services.NewCatalogService(
		catalogCache,
		idmap.NewIndexer(idStore),
		services.CatalogServiceConfig{RefreshInterval: cfg.Catalog.RefreshInterval},
		logging.WithComponent("catalog"),
	))
	tree.AddDataService(services.NewSweeperService(
		gateway,
		cfg.Cache.SweepInterval,
		cfg.Cache.StaleRetention,
		logging.WithComponent("metacache"),
	))

	if cfg.Jobs.Enabled {
		enqueuer := jobs.NewEnqueuer(jobs.NewRedisClient(&cfg.Jobs), &cfg.Jobs)
		defer func() {
			if err := enqueuer.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing job client")
			}
		}()
		gateway.SetStaleHook(enqueuer)
		tree.AddJobsService(jobs.NewWorker(&cfg.Jobs, jobs.NewHandler(gateway)))
		logging.Info().Str("redis_addr", cfg.Jobs.RedisAddr).Str("queue", cfg.Jobs.Queue).Msg("Background refresh enabled")
	}

	handler := api.NewHandler(api.Deps{
		Engine:     engine,
		Cache:      gateway,
		Catalog:    catalogCache,
		Provider:   svc,
		Normalizer: normalize.New(normalize.ImagesFromConfig(&cfg.Provider), svc.Language()),
		Resolver:   resolver,
		Recommend:  cfg.Recommend,
	})
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFrom(&cfg.Security))
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * time.Minute,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	// === START ===

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	err = tree.Serve(ctx)

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, s := range unstopped {
			logging.Warn().Str("service", s.Name).Msg("Service failed to stop within timeout")
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
