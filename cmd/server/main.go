// Showshelf - Streaming Catalog Cleaning, Enrichment, and Recommendations
// Copyright 2026 Showshelf Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showshelf/showshelf

// Command server runs the Showshelf HTTP service: it loads the catalog
// through the cleaning and enrichment pipeline, then serves the
// recommendation API, analytics tables, and the embedded web UI.
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

	"github.com/showshelf/showshelf/internal/api"
	"github.com/showshelf/showshelf/internal/config"
	"github.com/showshelf/showshelf/internal/logging"
	"github.com/showshelf/showshelf/internal/metrics"
	"github.com/showshelf/showshelf/internal/store"
)

// version is set at build time via -ldflags.
var version = "dev"

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

	logging.Info().
		Str("version", version).
		Str("titles_path", cfg.Data.TitlesPath).
		Str("ratings_path", cfg.Data.RatingsPath).
		Msg("Starting Showshelf")

	catalog := store.New(cfg.Data, cfg.Cache.TTL)

	start := time.Now()
	_, err = catalog.Load()
	stats := catalog.Stats()
	metrics.RecordCatalogLoad("startup", time.Since(start),
		stats.RawCount, stats.CleanedCount, stats.EnrichedCount, err)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load catalog")
	}

	router := api.NewRouter(catalog, cfg, version)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		logging.Error().Err(err).Msg("HTTP server failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}

	logging.Info().Msg("Showshelf stopped")
}
