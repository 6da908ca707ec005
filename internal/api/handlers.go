// Showshelf - Streaming Catalog Cleaning, Enrichment, and Recommendations
// Copyright 2026 Showshelf Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showshelf/showshelf

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/showshelf/showshelf/internal/config"
	"github.com/showshelf/showshelf/internal/logging"
	"github.com/showshelf/showshelf/internal/metrics"
	"github.com/showshelf/showshelf/internal/models"
	"github.com/showshelf/showshelf/internal/store"
	"github.com/showshelf/showshelf/internal/validation"
)

// Handler serves the catalog API backed by the in-memory store.
type Handler struct {
	catalog   *store.Catalog
	cfg       *config.Config
	version   string
	startTime time.Time
}

// NewHandler creates the API handler.
func NewHandler(catalog *store.Catalog, cfg *config.Config, version string) *Handler {
	return &Handler{
		catalog:   catalog,
		cfg:       cfg,
		version:   version,
		startTime: time.Now(),
	}
}

// Health reports overall service health including catalog state.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	status := models.HealthStatus{
		Status:        "ok",
		Version:       h.version,
		CatalogLoaded: h.catalog.Loaded(),
		Uptime:        time.Since(h.startTime).Seconds(),
	}
	if status.CatalogLoaded {
		status.LoadedAt = h.catalog.Stats().LoadedAt
	} else {
		status.Status = "degraded"
	}

	rw.Success(status)
}

// HealthLive is the liveness probe: the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]string{"status": "ok"})
}

// HealthReady is the readiness probe: the catalog must be loaded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.catalog.Loaded() {
		rw.ServiceUnavailable("Catalog not loaded")
		return
	}
	rw.Success(map[string]string{"status": "ready"})
}

// CatalogStats returns the load summary for the current catalog.
func (h *Handler) CatalogStats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.catalog.Loaded() {
		rw.ServiceUnavailable("Catalog not loaded")
		return
	}
	rw.Success(h.catalog.Stats())
}

// Genres returns the sorted distinct genre names in the catalog.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.catalog.Loaded() {
		rw.ServiceUnavailable("Catalog not loaded")
		return
	}

	genres := h.catalog.Genres()
	rw.SuccessWithMeta(genres, &APIMeta{Count: len(genres)})
}

// Recommendations runs a recommendation query.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.catalog.Loaded() {
		rw.ServiceUnavailable("Catalog not loaded")
		return
	}

	q, err := parseRecommendRequest(r, h.cfg.Recommend)
	if err != nil {
		var verr *validation.RequestValidationError
		if errors.As(err, &verr) {
			rw.ValidationError("Invalid recommendation request", verr.Errors())
			return
		}
		rw.BadRequest(err.Error())
		return
	}

	results := h.catalog.Recommend(q)
	metrics.RecordRecommendQuery(len(results))

	rw.SuccessWithMeta(results, &APIMeta{Count: len(results)})
}

// RatingDistribution returns the movie rating count matrix for charting.
func (h *Handler) RatingDistribution(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.catalog.Loaded() {
		rw.ServiceUnavailable("Catalog not loaded")
		return
	}
	rw.Success(h.catalog.RatingDistribution())
}

// GenreTrends returns per-genre catalog-addition trends for charting.
func (h *Handler) GenreTrends(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.catalog.Loaded() {
		rw.ServiceUnavailable("Catalog not loaded")
		return
	}

	trends := h.catalog.GenreTrends()
	rw.SuccessWithMeta(trends, &APIMeta{Count: len(trends)})
}

// Reload forces the catalog pipeline to run again from the source files.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	start := time.Now()
	err := h.catalog.Reload()
	stats := h.catalog.Stats()
	metrics.RecordCatalogLoad("reload", time.Since(start),
		stats.RawCount, stats.CleanedCount, stats.EnrichedCount, err)

	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Catalog reload failed")
		rw.InternalError("Catalog reload failed")
		return
	}

	rw.Success(stats)
}
