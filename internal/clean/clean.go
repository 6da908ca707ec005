// Showshelf - Streaming Catalog Cleaning, Enrichment, and Recommendations
// Copyright 2026 Showshelf Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showshelf/showshelf

// Package clean turns raw catalog rows into validated Title records.
//
// The transform is pure and stateless: normalize text fields, extract
// derived fields (duration, date parts, countries, genres), range-check
// the release year, and deduplicate by show identifier. Malformed input
// degrades to a missing value for that field, never an error.
package clean

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/showshelf/showshelf/internal/logging"
	"github.com/showshelf/showshelf/internal/models"
)

// Options controls the optional parts of the cleaning pipeline.
type Options struct {
	// EstimateSeasonMinutes back-fills DurationMinutes for season-only
	// records as seasons * EpisodesPerSeason * MinutesPerEpisode.
	EstimateSeasonMinutes bool
	EpisodesPerSeason     int
	MinutesPerEpisode     int

	// StandardizeGenres strips trailing qualifier words from genre names
	// ("Horror Movies" -> "Horror", "British TV Shows" -> "British").
	StandardizeGenres bool

	// ExplodeGenres additionally produces a row-per-genre projection for
	// analytical use.
	ExplodeGenres bool
}

// DefaultOptions matches the pipeline's standard configuration.
func DefaultOptions() Options {
	return Options{
		EstimateSeasonMinutes: false,
		EpisodesPerSeason:     10,
		MinutesPerEpisode:     45,
		StandardizeGenres:     true,
		ExplodeGenres:         false,
	}
}

var (
	minutesRe   = regexp.MustCompile(`(\d+)\s*min`)
	seasonsRe   = regexp.MustCompile(`(?i)(\d+)\s*Season`)
	listSplitRe = regexp.MustCompile(`\s*,\s*`)
	qualifierRe = regexp.MustCompile(`(?i)\s*(TV Shows?|Movies?|Series?|Dramas?)$`)
)

// tvRatingFixes maps concatenated TV-rating variants to canonical codes.
// Spaced variants ("TV MA") are covered by the space-to-hyphen rewrite.
var tvRatingFixes = map[string]string{
	"TVMA": "TV-MA",
	"TV14": "TV-14",
	"TVPG": "TV-PG",
	"TVG":  "TV-G",
	"TVY7": "TV-Y7",
	"TVY":  "TV-Y",
}

// dateAddedLayouts are the formats the catalog uses for date_added.
var dateAddedLayouts = []string{
	"January 2, 2006",
	"2 January 2006",
	"2006-01-02",
	"1/2/2006",
}

// Clean runs the full pipeline over raw rows. It returns the cleaned,
// deduplicated titles in original order and, when opts.ExplodeGenres is
// set, the row-per-genre projection (nil otherwise).
func Clean(raw []models.RawTitle, opts Options) ([]models.Title, []models.GenreRow) {
	log := logging.WithComponent("clean")

	titles := make([]models.Title, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	duplicates := 0

	for _, r := range raw {
		t := cleanOne(r, opts)

		// Keep-first dedupe by identifier.
		if _, ok := seen[t.ShowID]; ok {
			duplicates++
			continue
		}
		seen[t.ShowID] = struct{}{}
		titles = append(titles, t)
	}

	var genreRows []models.GenreRow
	if opts.ExplodeGenres {
		genreRows = explodeGenres(titles)
	}

	log.Info().
		Int("raw", len(raw)).
		Int("cleaned", len(titles)).
		Int("duplicates", duplicates).
		Msg("Cleaned catalog")

	return titles, genreRows
}

// cleanOne applies normalization, extraction, and validation to one row.
func cleanOne(r models.RawTitle, opts Options) models.Title {
	t := models.Title{
		ShowID:      normalizeText(r.ShowID),
		Title:       normalizeText(r.Title),
		Description: normalizeText(r.Description),
		Type:        NormalizeType(r.Type),
		Rating:      NormalizeRating(r.Rating),
	}

	// Date added parts.
	t.YearAdded, t.MonthAdded = parseDateAdded(r.DateAdded)

	// Duration: minutes and/or seasons, with optional minute estimation
	// for season-only records.
	t.DurationMinutes, t.Seasons = ParseDuration(r.Duration)
	if opts.EstimateSeasonMinutes && t.DurationMinutes == nil && t.Seasons != nil {
		est := *t.Seasons * opts.EpisodesPerSeason * opts.MinutesPerEpisode
		t.DurationMinutes = &est
	}

	// Countries: missing fills to "Unknown" before the split, so the
	// list is never empty.
	country := normalizeText(r.Country)
	if country == "" {
		country = "Unknown"
	}
	t.Countries = splitList(country)
	t.PrimaryCountry = t.Countries[0]

	// Director / cast presence flags, then the "Unknown" fill.
	director := normalizeText(r.Director)
	cast := normalizeText(r.Cast)
	t.HasDirector = director != ""
	t.HasCast = cast != ""
	if director == "" {
		director = "Unknown"
	}
	if cast == "" {
		cast = "Unknown"
	}
	t.Director = director
	t.Cast = cast

	// Genres.
	listedIn := normalizeText(r.ListedIn)
	if listedIn == "" {
		listedIn = "Unknown"
	}
	t.Genres = splitList(listedIn)
	if opts.StandardizeGenres {
		for i, g := range t.Genres {
			t.Genres[i] = StandardizeGenre(g)
		}
	}

	// Release year range check, then flags and the day-one derivation.
	t.ReleaseYear = parseReleaseYear(r.ReleaseYear)
	t.IsMovie = t.Type == "Movie"
	t.IsTV = t.Type == "TV Show"
	if t.ReleaseYear != nil {
		jan, first := int(time.January), 1
		t.ReleaseMonth = &jan
		t.ReleaseDay = &first
	}

	return t
}

// normalizeText trims whitespace and resolves the empty markers ("",
// "nan", "None") to the empty string.
func normalizeText(s string) string {
	s = strings.TrimSpace(s)
	if s == "nan" || s == "None" {
		return ""
	}
	return s
}

// NormalizeType title-cases the type field and maps "Tv Show" to the
// canonical "TV Show".
func NormalizeType(s string) string {
	s = normalizeText(s)
	if s == "" {
		return ""
	}
	s = titleCase(s)
	if s == "Tv Show" {
		return "TV Show"
	}
	return s
}

// NormalizeRating uppercases, replaces spaces with hyphens, and maps
// concatenated TV-rating variants to canonical hyphenated codes, so
// "TV MA", "TVMA", and "TV-MA" all normalize to "TV-MA".
func NormalizeRating(s string) string {
	s = normalizeText(s)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(strings.ToUpper(s), " ", "-")
	if fixed, ok := tvRatingFixes[s]; ok {
		return fixed
	}
	return s
}

// ParseDuration extracts minutes and season counts from the free-text
// duration field. A record may have minutes, seasons, both, or neither.
func ParseDuration(s string) (minutes, seasons *int) {
	s = normalizeText(s)
	if s == "" {
		return nil, nil
	}
	if m := minutesRe.FindStringSubmatch(s); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			minutes = &n
		}
	}
	if m := seasonsRe.FindStringSubmatch(s); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			seasons = &n
		}
	}
	return minutes, seasons
}

// StandardizeGenre strips one trailing qualifier word from a genre name.
func StandardizeGenre(s string) string {
	return strings.TrimSpace(qualifierRe.ReplaceAllString(s, ""))
}

// parseDateAdded extracts year and month from the date_added field.
// Unparsable dates yield nil parts, not an error.
func parseDateAdded(s string) (year, month *int) {
	s = normalizeText(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateAddedLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			y, m := d.Year(), int(d.Month())
			return &y, &m
		}
	}
	return nil, nil
}

// parseReleaseYear coerces the year to an integer and clears values
// outside [1900, currentYear+1] to missing.
func parseReleaseYear(s string) *int {
	s = normalizeText(s)
	if s == "" {
		return nil
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	if y < 1900 || y > time.Now().Year()+1 {
		return nil
	}
	return &y
}

// splitList splits on commas with surrounding whitespace trimmed.
func splitList(s string) []string {
	return listSplitRe.Split(s, -1)
}

// titleCase uppercases the first letter of each space-separated word and
// lowercases the rest.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// explodeGenres produces one GenreRow per (title, genre) pair.
func explodeGenres(titles []models.Title) []models.GenreRow {
	rows := make([]models.GenreRow, 0, len(titles)*2)
	for _, t := range titles {
		for _, g := range t.Genres {
			rows = append(rows, models.GenreRow{ShowID: t.ShowID, Title: t.Title, Genre: g})
		}
	}
	return rows
}
