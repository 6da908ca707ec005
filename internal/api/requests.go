// Showshelf - Streaming Catalog Cleaning, Enrichment, and Recommendations
// Copyright 2026 Showshelf Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showshelf/showshelf

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/showshelf/showshelf/internal/config"
	"github.com/showshelf/showshelf/internal/recommend"
	"github.com/showshelf/showshelf/internal/validation"
)

// RecommendRequest carries the query parameters of a recommendation call.
type RecommendRequest struct {
	Keywords    []string `json:"keywords"`
	Genres      []string `json:"genres"`
	KeywordMode string   `json:"keyword_mode" validate:"omitempty,oneof=any all"`
	GenreMode   string   `json:"genre_mode" validate:"omitempty,oneof=any all"`
	Limit       int      `json:"limit" validate:"gte=1"`
}

// parseRecommendRequest reads and validates the recommendation query
// parameters, applying the configured default and maximum limits.
func parseRecommendRequest(r *http.Request, cfg config.RecommendConfig) (recommend.Query, error) {
	q := r.URL.Query()

	req := RecommendRequest{
		Keywords:    parseCommaSeparated(q.Get("keywords")),
		Genres:      parseCommaSeparated(q.Get("genres")),
		KeywordMode: q.Get("keyword_mode"),
		GenreMode:   q.Get("genre_mode"),
		Limit:       cfg.DefaultLimit,
	}

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return recommend.Query{}, fmt.Errorf("invalid limit %q: must be an integer", raw)
		}
		req.Limit = n
	}
	if req.Limit > cfg.MaxLimit {
		req.Limit = cfg.MaxLimit
	}

	if verr := validation.ValidateStruct(req); verr != nil {
		return recommend.Query{}, verr
	}

	keywordMode, err := recommend.ParseMatchMode(req.KeywordMode)
	if err != nil {
		return recommend.Query{}, err
	}
	genreMode, err := recommend.ParseMatchMode(req.GenreMode)
	if err != nil {
		return recommend.Query{}, err
	}

	return recommend.Query{
		Keywords:    req.Keywords,
		Genres:      req.Genres,
		KeywordMode: keywordMode,
		GenreMode:   genreMode,
		Limit:       req.Limit,
	}, nil
}

// parseCommaSeparated splits a comma-separated parameter into trimmed,
// non-empty values.
func parseCommaSeparated(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}
