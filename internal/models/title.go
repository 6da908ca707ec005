// Showshelf - Streaming Catalog Cleaning, Enrichment, and Recommendations
// Copyright 2026 Showshelf Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showshelf/showshelf

// Package models defines the domain types shared by the cleaning, enrichment,
// and recommendation pipeline.
//
// The pipeline moves records through three shapes:
//
//	RawTitle -> Title (cleaned) -> EnrichedTitle (joined with external ratings)
//
// Optional scalar fields use pointer types; a missing value is nil, never a
// zero sentinel.
package models

import "time"

// RawTitle is one catalog CSV row exactly as read from the source file.
// No invariants hold; any field may be empty or malformed.
type RawTitle struct {
	ShowID      string
	Type        string
	Title       string
	Director    string
	Cast        string
	Country     string
	DateAdded   string
	ReleaseYear string
	Rating      string
	Duration    string
	ListedIn    string
	Description string
}

// Title is a catalog record after normalization, derived-field extraction,
// and validation. Invariants (enforced by the clean package):
//
//   - ShowID is unique across the collection
//   - Type is "Movie", "TV Show", or empty
//   - Rating is a canonical hyphenated code or empty
//   - ReleaseYear, when set, is within [1900, currentYear+1]
type Title struct {
	ShowID      string `json:"show_id"`
	Type        string `json:"type,omitempty"`
	Title       string `json:"title"`
	Director    string `json:"director"`
	Cast        string `json:"cast"`
	Description string `json:"description,omitempty"`
	Rating      string `json:"rating,omitempty"`

	ReleaseYear *int `json:"release_year,omitempty"`

	// DateAdded parts; nil when the source date was absent or unparsable.
	YearAdded  *int `json:"year_added,omitempty"`
	MonthAdded *int `json:"month_added,omitempty"`

	// Duration parts; a record may carry minutes, seasons, both, or neither.
	DurationMinutes *int `json:"duration_minutes,omitempty"`
	Seasons         *int `json:"seasons,omitempty"`

	Countries      []string `json:"countries"`
	PrimaryCountry string   `json:"primary_country"`

	Genres []string `json:"genres"`

	// HasDirector/HasCast reflect presence in the source, before the
	// "Unknown" fill applied to Director and Cast.
	HasDirector bool `json:"has_director"`
	HasCast     bool `json:"has_cast"`

	IsMovie bool `json:"is_movie"`
	IsTV    bool `json:"is_tv"`

	// ReleaseMonth/ReleaseDay come from treating the bare release year as a
	// January 1 date. The upstream pipeline derived them this way and the
	// values are preserved for parity, not because the calendar reading is
	// meaningful.
	ReleaseMonth *int `json:"release_month,omitempty"`
	ReleaseDay   *int `json:"release_day,omitempty"`
}

// GenreRow is one row of the exploded genre projection: one record per
// (title, genre) pair, for analytical use.
type GenreRow struct {
	ShowID string `json:"show_id"`
	Title  string `json:"title"`
	Genre  string `json:"genre"`
}

// ExternalRating is one entry of the external ratings dataset, pre-filtered
// to movie-type rows.
type ExternalRating struct {
	ID            string  `json:"id"`
	PrimaryTitle  string  `json:"primary_title"`
	OriginalTitle string  `json:"original_title"`
	StartYear     *int    `json:"start_year,omitempty"`
	TitleType     string  `json:"title_type"`
	AverageRating float64 `json:"average_rating"`
	NumVotes      int     `json:"num_votes"`
}

// EnrichedTitle is a cleaned Title joined with its external rating. At most
// one EnrichedTitle exists per distinct title; competing external matches
// are resolved by highest vote count.
type EnrichedTitle struct {
	Title
	AverageRating float64 `json:"average_rating"`
	NumVotes      int     `json:"num_votes"`
}

// Recommendation is the projection of an EnrichedTitle returned by the
// recommendation filter.
type Recommendation struct {
	Title         string   `json:"title"`
	AverageRating float64  `json:"average_rating"`
	Genres        []string `json:"genres"`
	Description   string   `json:"description"`
}

// CatalogStats summarizes a loaded catalog for the stats endpoint.
type CatalogStats struct {
	TitlesPath    string    `json:"titles_path"`
	RatingsPath   string    `json:"ratings_path"`
	RawCount      int       `json:"raw_count"`
	CleanedCount  int       `json:"cleaned_count"`
	EnrichedCount int       `json:"enriched_count"`
	GenreCount    int       `json:"genre_count"`
	LoadedAt      time.Time `json:"loaded_at"`
	LoadDurationMs int64    `json:"load_duration_ms"`
}

// HealthStatus is the health check response.
type HealthStatus struct {
	Status        string    `json:"status"`
	Version       string    `json:"version"`
	CatalogLoaded bool      `json:"catalog_loaded"`
	LoadedAt      time.Time `json:"loaded_at,omitzero"`
	Uptime        float64   `json:"uptime_seconds"`
}
