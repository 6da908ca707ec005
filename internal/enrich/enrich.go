// Showshelf - Streaming Catalog Cleaning, Enrichment, and Recommendations
// Copyright 2026 Showshelf Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showshelf/showshelf

// Package enrich joins cleaned titles against the external rating dataset.
//
// The join is an exact, case-sensitive match between the catalog title and
// the external primary title. When several external entries share a title,
// the one with the highest vote count wins. Titles without a match are
// dropped, so everything downstream of enrichment carries a rating.
package enrich

import (
	"github.com/showshelf/showshelf/internal/logging"
	"github.com/showshelf/showshelf/internal/models"
)

// Merge joins titles with ratings on exact title equality and returns the
// enriched collection in the titles' original order.
func Merge(titles []models.Title, ratings []models.ExternalRating) []models.EnrichedTitle {
	log := logging.WithComponent("enrich")

	// Resolve competing external entries per title up front: highest vote
	// count wins, first occurrence wins ties.
	best := make(map[string]models.ExternalRating, len(ratings))
	for _, r := range ratings {
		if cur, ok := best[r.PrimaryTitle]; !ok || r.NumVotes > cur.NumVotes {
			best[r.PrimaryTitle] = r
		}
	}

	enriched := make([]models.EnrichedTitle, 0, len(titles))
	for _, t := range titles {
		r, ok := best[t.Title]
		if !ok {
			continue
		}
		enriched = append(enriched, models.EnrichedTitle{
			Title:         t,
			AverageRating: r.AverageRating,
			NumVotes:      r.NumVotes,
		})
	}

	log.Info().
		Int("titles", len(titles)).
		Int("external", len(ratings)).
		Int("enriched", len(enriched)).
		Int("unmatched", len(titles)-len(enriched)).
		Msg("Merged external ratings")

	return enriched
}
