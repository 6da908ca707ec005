// Showshelf - Streaming Catalog Cleaning, Enrichment, and Recommendations
// Copyright 2026 Showshelf Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showshelf/showshelf

// Package dataset reads the raw catalog and external rating files from disk.
//
// Two inputs are supported:
//
//   - The catalog CSV: one row per title, comma-separated, with a header
//     row naming the columns (show_id, type, title, ...). Columns are
//     addressed by header name, so column order does not matter.
//   - The external rating pair: two tab-separated files in the common
//     public dataset layout, one carrying title metadata (identifier,
//     titles, year, type) and one carrying vote aggregates (identifier,
//     average rating, vote count). The pair is joined on the identifier.
//
// Loaders return everything they could parse plus an error only when the
// file itself is unreadable. Individual malformed rows are skipped and
// counted, never fatal.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/showshelf/showshelf/internal/logging"
	"github.com/showshelf/showshelf/internal/models"
)

// missingSentinel marks absent values in the tab-separated rating files.
const missingSentinel = `\N`

// titleColumns are the catalog CSV headers the loader requires.
var titleColumns = []string{
	"show_id", "type", "title", "director", "cast", "country",
	"date_added", "release_year", "rating", "duration", "listed_in", "description",
}

// LoadTitles reads the catalog CSV at path and returns one RawTitle per
// data row. Values are returned exactly as they appear in the file;
// cleaning happens downstream.
func LoadTitles(path string) ([]models.RawTitle, error) {
	log := logging.WithComponent("dataset")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open titles file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows, validated per-row below
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read titles header: %w", err)
	}

	idx, err := columnIndex(header, titleColumns)
	if err != nil {
		return nil, fmt.Errorf("titles file %s: %w", path, err)
	}
	minFields := maxIndex(idx, titleColumns) + 1

	var (
		titles  []models.RawTitle
		skipped int
		line    = 1
	)
	for {
		line++
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			log.Debug().Int("line", line).Err(err).Msg("Skipping malformed catalog row")
			continue
		}
		if len(record) < minFields {
			skipped++
			log.Debug().Int("line", line).Int("fields", len(record)).Msg("Skipping short catalog row")
			continue
		}

		titles = append(titles, models.RawTitle{
			ShowID:      record[idx["show_id"]],
			Type:        record[idx["type"]],
			Title:       record[idx["title"]],
			Director:    record[idx["director"]],
			Cast:        record[idx["cast"]],
			Country:     record[idx["country"]],
			DateAdded:   record[idx["date_added"]],
			ReleaseYear: record[idx["release_year"]],
			Rating:      record[idx["rating"]],
			Duration:    record[idx["duration"]],
			ListedIn:    record[idx["listed_in"]],
			Description: record[idx["description"]],
		})
	}

	log.Info().
		Str("path", path).
		Int("titles", len(titles)).
		Int("skipped", skipped).
		Msg("Loaded catalog titles")

	return titles, nil
}

// voteRecord is the rating-file half of the external join.
type voteRecord struct {
	averageRating float64
	numVotes      int
}

// LoadExternalRatings reads the metadata and vote files and joins them on
// the shared identifier. Only rows whose title type is "movie" and that
// appear in both files are returned.
func LoadExternalRatings(basicsPath, ratingsPath string) ([]models.ExternalRating, error) {
	log := logging.WithComponent("dataset")

	votes, err := loadVotes(ratingsPath, log)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(basicsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open basics file %s: %w", basicsPath, err)
	}
	defer f.Close()

	r := tsvReader(f)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read basics header: %w", err)
	}
	basicsColumns := []string{"tconst", "titleType", "primaryTitle", "originalTitle", "startYear"}
	idx, err := columnIndex(header, basicsColumns)
	if err != nil {
		return nil, fmt.Errorf("basics file %s: %w", basicsPath, err)
	}
	minFields := maxIndex(idx, basicsColumns) + 1

	var (
		ratings []models.ExternalRating
		skipped int
		unrated int
	)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		if len(record) < minFields {
			skipped++
			continue
		}
		if record[idx["titleType"]] != "movie" {
			continue
		}

		id := record[idx["tconst"]]
		vote, ok := votes[id]
		if !ok {
			unrated++
			continue
		}

		er := models.ExternalRating{
			ID:            id,
			PrimaryTitle:  record[idx["primaryTitle"]],
			OriginalTitle: record[idx["originalTitle"]],
			TitleType:     record[idx["titleType"]],
			AverageRating: vote.averageRating,
			NumVotes:      vote.numVotes,
		}
		if raw := record[idx["startYear"]]; raw != missingSentinel && raw != "" {
			if year, err := strconv.Atoi(raw); err == nil {
				er.StartYear = &year
			}
		}
		ratings = append(ratings, er)
	}

	log.Info().
		Str("basics_path", basicsPath).
		Str("ratings_path", ratingsPath).
		Int("movies", len(ratings)).
		Int("unrated", unrated).
		Int("skipped", skipped).
		Msg("Loaded external ratings")

	return ratings, nil
}

// loadVotes reads the vote-aggregate file into a map keyed by identifier.
func loadVotes(path string, log zerolog.Logger) (map[string]voteRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ratings file %s: %w", path, err)
	}
	defer f.Close()

	r := tsvReader(f)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read ratings header: %w", err)
	}
	votesColumns := []string{"tconst", "averageRating", "numVotes"}
	idx, err := columnIndex(header, votesColumns)
	if err != nil {
		return nil, fmt.Errorf("ratings file %s: %w", path, err)
	}
	minFields := maxIndex(idx, votesColumns) + 1

	votes := make(map[string]voteRecord)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(record) < minFields {
			continue
		}

		avg, err := strconv.ParseFloat(record[idx["averageRating"]], 64)
		if err != nil {
			log.Debug().Str("tconst", record[idx["tconst"]]).Msg("Skipping row with unparseable rating")
			continue
		}
		n, err := strconv.Atoi(record[idx["numVotes"]])
		if err != nil {
			log.Debug().Str("tconst", record[idx["tconst"]]).Msg("Skipping row with unparseable vote count")
			continue
		}

		votes[record[idx["tconst"]]] = voteRecord{averageRating: avg, numVotes: n}
	}

	return votes, nil
}

// tsvReader configures a csv.Reader for the tab-separated rating files.
// The files are unquoted, so lazy quoting keeps embedded quote characters
// in titles from breaking the parse.
func tsvReader(f io.Reader) *csv.Reader {
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	return r
}

// maxIndex returns the highest position among the required columns.
func maxIndex(idx map[string]int, required []string) int {
	max := 0
	for _, name := range required {
		if idx[name] > max {
			max = idx[name]
		}
	}
	return max
}

// columnIndex maps required column names to their positions in header.
func columnIndex(header, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return idx, nil
}
