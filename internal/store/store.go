// Showshelf - Streaming Catalog Cleaning, Enrichment, and Recommendations
// Copyright 2026 Showshelf Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showshelf/showshelf

// Package store owns the loaded catalog and serves queries against it.
//
// The catalog is loaded once from the configured source files and held in
// memory. Loads are keyed by source path and modification time: a Load
// against unchanged sources is a no-op, and Reload forces the pipeline to
// run again. Query results are cached per parameter set and invalidated
// wholesale on reload. There is no partial update; a load either replaces
// the whole catalog or leaves the previous one intact.
package store

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/showshelf/showshelf/internal/analytics"
	"github.com/showshelf/showshelf/internal/cache"
	"github.com/showshelf/showshelf/internal/clean"
	"github.com/showshelf/showshelf/internal/config"
	"github.com/showshelf/showshelf/internal/dataset"
	"github.com/showshelf/showshelf/internal/enrich"
	"github.com/showshelf/showshelf/internal/logging"
	"github.com/showshelf/showshelf/internal/metrics"
	"github.com/showshelf/showshelf/internal/models"
	"github.com/showshelf/showshelf/internal/recommend"
)

// sourceKey identifies one loaded snapshot of the source files.
type sourceKey struct {
	titlesPath   string
	titlesMod    time.Time
	basicsPath   string
	basicsMod    time.Time
	ratingsPath  string
	ratingsMod   time.Time
}

// Catalog holds the cleaned and enriched dataset plus derived tables.
type Catalog struct {
	cfg config.DataConfig

	mu       sync.RWMutex
	loaded   bool
	key      sourceKey
	titles   []models.Title
	enriched []models.EnrichedTitle
	genreRows []models.GenreRow
	stats    models.CatalogStats

	results *cache.Cache
}

// New creates an empty catalog. Call Load before querying.
func New(cfg config.DataConfig, resultTTL time.Duration) *Catalog {
	return &Catalog{
		cfg:     cfg,
		results: cache.New(resultTTL),
	}
}

// Load runs the pipeline unless the sources are unchanged since the last
// load. It returns true when a load actually happened.
func (c *Catalog) Load() (bool, error) {
	key, err := c.currentKey()
	if err != nil {
		return false, err
	}

	c.mu.RLock()
	unchanged := c.loaded && key == c.key
	c.mu.RUnlock()
	if unchanged {
		return false, nil
	}

	return true, c.loadLocked(key)
}

// Reload forces the pipeline to run regardless of source modification
// times and drops all cached query results.
func (c *Catalog) Reload() error {
	key, err := c.currentKey()
	if err != nil {
		return err
	}
	return c.loadLocked(key)
}

func (c *Catalog) currentKey() (sourceKey, error) {
	key := sourceKey{
		titlesPath:  c.cfg.TitlesPath,
		basicsPath:  c.cfg.BasicsPath,
		ratingsPath: c.cfg.RatingsPath,
	}

	for _, src := range []struct {
		path string
		mod  *time.Time
	}{
		{key.titlesPath, &key.titlesMod},
		{key.basicsPath, &key.basicsMod},
		{key.ratingsPath, &key.ratingsMod},
	} {
		info, err := os.Stat(src.path)
		if err != nil {
			return sourceKey{}, fmt.Errorf("failed to stat source file %s: %w", src.path, err)
		}
		*src.mod = info.ModTime()
	}

	return key, nil
}

// loadLocked runs the full pipeline and atomically replaces the catalog.
// On any load error the previous catalog remains intact.
func (c *Catalog) loadLocked(key sourceKey) error {
	log := logging.WithComponent("store")
	start := time.Now()

	raw, err := dataset.LoadTitles(c.cfg.TitlesPath)
	if err != nil {
		return fmt.Errorf("catalog load failed: %w", err)
	}
	ratings, err := dataset.LoadExternalRatings(c.cfg.BasicsPath, c.cfg.RatingsPath)
	if err != nil {
		return fmt.Errorf("catalog load failed: %w", err)
	}

	opts := clean.Options{
		EstimateSeasonMinutes: c.cfg.EstimateSeasonMinutes,
		EpisodesPerSeason:     c.cfg.EpisodesPerSeason,
		MinutesPerEpisode:     c.cfg.MinutesPerEpisode,
		StandardizeGenres:     c.cfg.StandardizeGenres,
		ExplodeGenres:         c.cfg.ExplodeGenres,
	}
	titles, genreRows := clean.Clean(raw, opts)
	enriched := enrich.Merge(titles, ratings)

	stats := models.CatalogStats{
		TitlesPath:     c.cfg.TitlesPath,
		RatingsPath:    c.cfg.RatingsPath,
		RawCount:       len(raw),
		CleanedCount:   len(titles),
		EnrichedCount:  len(enriched),
		GenreCount:     len(analytics.Genres(titles)),
		LoadedAt:       time.Now().UTC(),
		LoadDurationMs: time.Since(start).Milliseconds(),
	}

	c.mu.Lock()
	c.loaded = true
	c.key = key
	c.titles = titles
	c.enriched = enriched
	c.genreRows = genreRows
	c.stats = stats
	c.mu.Unlock()

	c.results.Clear()

	log.Info().
		Int("cleaned", stats.CleanedCount).
		Int("enriched", stats.EnrichedCount).
		Int64("duration_ms", stats.LoadDurationMs).
		Msg("Catalog loaded")

	return nil
}

// Loaded reports whether a catalog is in memory.
func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Stats returns the load summary for the current catalog.
func (c *Catalog) Stats() models.CatalogStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Genres returns the sorted distinct genre names in the catalog.
func (c *Catalog) Genres() []string {
	c.mu.RLock()
	titles := c.titles
	c.mu.RUnlock()
	return analytics.Genres(titles)
}

// Recommend runs a recommendation query, serving repeated parameter sets
// from the result cache.
func (c *Catalog) Recommend(q recommend.Query) []models.Recommendation {
	key := cache.GenerateKey("recommend", q)
	if v, ok := c.results.Get(key); ok {
		if recs, ok := v.([]models.Recommendation); ok {
			metrics.CacheHits.WithLabelValues("results").Inc()
			return recs
		}
	}
	metrics.CacheMisses.WithLabelValues("results").Inc()

	c.mu.RLock()
	enriched := c.enriched
	c.mu.RUnlock()

	recs := recommend.Recommend(enriched, q)
	c.results.Set(key, recs)
	metrics.CacheSize.WithLabelValues("results").Set(float64(c.results.GetStats().TotalKeys))
	return recs
}

// RatingDistribution returns the movie rating count matrix.
func (c *Catalog) RatingDistribution() models.RatingDistribution {
	key := cache.GenerateKey("rating_distribution", nil)
	if v, ok := c.results.Get(key); ok {
		if d, ok := v.(models.RatingDistribution); ok {
			return d
		}
	}

	c.mu.RLock()
	titles := c.titles
	c.mu.RUnlock()

	d := analytics.RatingDistribution(titles)
	c.results.Set(key, d)
	return d
}

// GenreTrends returns per-genre catalog-addition trends.
func (c *Catalog) GenreTrends() []models.GenreTrend {
	key := cache.GenerateKey("genre_trends", nil)
	if v, ok := c.results.Get(key); ok {
		if trends, ok := v.([]models.GenreTrend); ok {
			return trends
		}
	}

	c.mu.RLock()
	titles := c.titles
	c.mu.RUnlock()

	trends := analytics.GenreTrends(titles)
	c.results.Set(key, trends)
	return trends
}

// GenreRows returns the exploded genre projection, when enabled.
func (c *Catalog) GenreRows() []models.GenreRow {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.genreRows
}

// CacheStats exposes result-cache counters for observability.
func (c *Catalog) CacheStats() cache.Stats {
	return c.results.GetStats()
}
