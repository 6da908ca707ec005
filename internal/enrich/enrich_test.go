// Showshelf - Streaming Catalog Cleaning, Enrichment, and Recommendations
// Copyright 2026 Showshelf Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showshelf/showshelf

package enrich

import (
	"testing"

	"github.com/showshelf/showshelf/internal/models"
)

func TestMergeInnerJoin(t *testing.T) {
	titles := []models.Title{
		{ShowID: "s1", Title: "Matched Film"},
		{ShowID: "s2", Title: "Unmatched Film"},
	}
	ratings := []models.ExternalRating{
		{ID: "tt1", PrimaryTitle: "Matched Film", AverageRating: 7.8, NumVotes: 1000},
	}

	got := Merge(titles, ratings)
	if len(got) != 1 {
		t.Fatalf("Expected 1 enriched title, got %d", len(got))
	}
	if got[0].ShowID != "s1" || got[0].AverageRating != 7.8 || got[0].NumVotes != 1000 {
		t.Errorf("Unexpected enriched record: %+v", got[0])
	}
}

func TestMergeKeepsHighestVoteCount(t *testing.T) {
	titles := []models.Title{{ShowID: "s1", Title: "Remade Film"}}
	ratings := []models.ExternalRating{
		{ID: "tt1", PrimaryTitle: "Remade Film", AverageRating: 5.0, NumVotes: 50},
		{ID: "tt2", PrimaryTitle: "Remade Film", AverageRating: 8.0, NumVotes: 100},
		{ID: "tt3", PrimaryTitle: "Remade Film", AverageRating: 9.9, NumVotes: 10},
	}

	got := Merge(titles, ratings)
	if len(got) != 1 {
		t.Fatalf("Expected 1 enriched title, got %d", len(got))
	}
	if got[0].NumVotes != 100 || got[0].AverageRating != 8.0 {
		t.Errorf("Expected the 100-vote entry to win, got %+v", got[0])
	}
}

func TestMergeIsCaseSensitive(t *testing.T) {
	titles := []models.Title{{ShowID: "s1", Title: "some film"}}
	ratings := []models.ExternalRating{
		{ID: "tt1", PrimaryTitle: "Some Film", AverageRating: 7.0, NumVotes: 10},
	}

	if got := Merge(titles, ratings); len(got) != 0 {
		t.Errorf("Expected no match for differing case, got %+v", got)
	}
}

func TestMergePreservesCatalogOrder(t *testing.T) {
	titles := []models.Title{
		{ShowID: "s1", Title: "B Film"},
		{ShowID: "s2", Title: "A Film"},
	}
	ratings := []models.ExternalRating{
		{ID: "tt1", PrimaryTitle: "A Film", AverageRating: 9.0, NumVotes: 10},
		{ID: "tt2", PrimaryTitle: "B Film", AverageRating: 1.0, NumVotes: 10},
	}

	got := Merge(titles, ratings)
	if len(got) != 2 || got[0].ShowID != "s1" || got[1].ShowID != "s2" {
		t.Errorf("Catalog order not preserved: %+v", got)
	}
}

func TestMergeEmptyInputs(t *testing.T) {
	if got := Merge(nil, nil); len(got) != 0 {
		t.Errorf("Expected empty result for empty inputs, got %+v", got)
	}
}
