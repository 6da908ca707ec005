// Showshelf - Streaming Catalog Cleaning, Enrichment, and Recommendations
// Copyright 2026 Showshelf Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showshelf/showshelf

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/showshelf/showshelf/internal/config"
	"github.com/showshelf/showshelf/internal/metrics"
	"github.com/showshelf/showshelf/internal/middleware"
	"github.com/showshelf/showshelf/internal/store"
)

// Router wires handlers and middleware into the HTTP surface.
type Router struct {
	handler *Handler
	cfg     *config.Config
}

// NewRouter creates a router over the given catalog.
func NewRouter(catalog *store.Catalog, cfg *config.Config, version string) *Router {
	return &Router{
		handler: NewHandler(catalog, cfg, version),
		cfg:     cfg,
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: router.cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}))

	// Health endpoints get permissive rate limiting so monitors can poll
	// freely.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.Limit(1000, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Catalog and analytics endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.rateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)

		r.Get("/catalog/stats", router.handler.CatalogStats)
		r.Get("/catalog/genres", router.handler.Genres)
		r.Post("/catalog/reload", router.handler.Reload)
		r.Get("/recommendations", router.handler.Recommendations)
		r.Get("/analytics/rating-distribution", router.handler.RatingDistribution)
		r.Get("/analytics/genre-trends", router.handler.GenreTrends)
	})

	// Observability.
	r.Handle("/metrics", promhttp.Handler())

	// Embedded UI. Must be last so it catches unmatched routes.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Compression)
		r.Get("/*", router.serveStaticOrIndex)
	})

	return r
}

// rateLimit builds the IP-keyed limiter for data endpoints.
func (router *Router) rateLimit() func(http.Handler) http.Handler {
	return httprate.Limit(
		router.cfg.Server.RateLimitReqs,
		router.cfg.Server.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
			WriteError(w, r, http.StatusTooManyRequests, ErrCodeTooManyRequests,
				"Rate limit exceeded, slow down")
		}),
	)
}
