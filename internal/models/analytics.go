// Showshelf - Streaming Catalog Cleaning, Enrichment, and Recommendations
// Copyright 2026 Showshelf Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showshelf/showshelf

package models

// RatingDistribution is the year-by-rating count table rendered as a styled
// grid by the UI. Years are ascending; Ratings columns are sorted
// alphabetically; Counts[i][j] is the number of movies released in Years[i]
// carrying Ratings[j].
type RatingDistribution struct {
	Years   []int    `json:"years"`
	Ratings []string `json:"ratings"`
	Counts  [][]int  `json:"counts"`
}

// GenreTrend is the per-genre time series of titles added to the catalog,
// keyed by the year the title was added.
type GenreTrend struct {
	Genre  string           `json:"genre"`
	Points []GenreTrendPoint `json:"points"`
}

// GenreTrendPoint is one (year added, count) sample of a genre trend.
type GenreTrendPoint struct {
	YearAdded int `json:"year_added"`
	Count     int `json:"count"`
}
