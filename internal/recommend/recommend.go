// Showshelf - Streaming Catalog Cleaning, Enrichment, and Recommendations
// Copyright 2026 Showshelf Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showshelf/showshelf

// Package recommend filters and ranks enriched titles.
//
// A query carries optional keyword and genre predicates, each with its own
// any/all match mode, plus a result limit. Filtering is a pure function of
// the input collection; repeated queries over the same collection return
// the same result.
package recommend

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/showshelf/showshelf/internal/models"
)

// MatchMode selects union or intersection semantics for a multi-term
// predicate.
type MatchMode int

const (
	// MatchAny keeps records matching at least one term.
	MatchAny MatchMode = iota
	// MatchAll keeps records matching every term.
	MatchAll
)

// ParseMatchMode converts the wire form ("any"/"all") to a MatchMode.
// The empty string defaults to MatchAny.
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return MatchAny, nil
	case "all":
		return MatchAll, nil
	default:
		return MatchAny, fmt.Errorf("invalid match mode %q: must be \"any\" or \"all\"", s)
	}
}

// String returns the wire form of the mode.
func (m MatchMode) String() string {
	if m == MatchAll {
		return "all"
	}
	return "any"
}

// Query is one recommendation request.
type Query struct {
	// Keywords are matched case-insensitively against the description.
	// Each keyword is treated as a regular expression, falling back to a
	// plain substring search when it does not compile. Empty means no
	// keyword filtering.
	Keywords []string

	// Genres are compared case-insensitively against the record's genre
	// list. Empty means no genre filtering.
	Genres []string

	KeywordMode MatchMode
	GenreMode   MatchMode

	// Limit truncates the ranked result. Must be positive.
	Limit int
}

// Recommend filters titles by q, ranks survivors by descending average
// rating (ties keep input order), and returns the first q.Limit records
// projected to the recommendation shape. An empty result is normal, not
// an error.
func Recommend(titles []models.EnrichedTitle, q Query) []models.Recommendation {
	matchers := compileKeywords(q.Keywords)

	var survivors []models.EnrichedTitle
	for _, t := range titles {
		if !matchKeywords(t.Description, matchers, q.KeywordMode) {
			continue
		}
		if !matchGenres(t.Genres, q.Genres, q.GenreMode) {
			continue
		}
		survivors = append(survivors, t)
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].AverageRating > survivors[j].AverageRating
	})

	if q.Limit > 0 && len(survivors) > q.Limit {
		survivors = survivors[:q.Limit]
	}

	results := make([]models.Recommendation, 0, len(survivors))
	for _, t := range survivors {
		results = append(results, models.Recommendation{
			Title:         t.Title.Title,
			AverageRating: t.AverageRating,
			Genres:        t.Genres,
			Description:   t.Description,
		})
	}
	return results
}

// keywordMatcher tests a description against one keyword.
type keywordMatcher struct {
	re      *regexp.Regexp // nil when the keyword is not a valid pattern
	literal string         // lowercased substring fallback
}

func (m keywordMatcher) matches(description string) bool {
	if m.re != nil {
		return m.re.MatchString(description)
	}
	return strings.Contains(strings.ToLower(description), m.literal)
}

// compileKeywords builds case-insensitive matchers, one per keyword.
func compileKeywords(keywords []string) []keywordMatcher {
	matchers := make([]keywordMatcher, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		m := keywordMatcher{literal: strings.ToLower(kw)}
		if re, err := regexp.Compile("(?i)" + kw); err == nil {
			m.re = re
		}
		matchers = append(matchers, m)
	}
	return matchers
}

func matchKeywords(description string, matchers []keywordMatcher, mode MatchMode) bool {
	if len(matchers) == 0 {
		return true
	}
	for _, m := range matchers {
		matched := m.matches(description)
		if mode == MatchAny && matched {
			return true
		}
		if mode == MatchAll && !matched {
			return false
		}
	}
	return mode == MatchAll
}

func matchGenres(have, want []string, mode MatchMode) bool {
	if len(want) == 0 {
		return true
	}
	haveSet := make(map[string]struct{}, len(have))
	for _, g := range have {
		haveSet[strings.ToLower(strings.TrimSpace(g))] = struct{}{}
	}
	for _, g := range want {
		_, matched := haveSet[strings.ToLower(strings.TrimSpace(g))]
		if mode == MatchAny && matched {
			return true
		}
		if mode == MatchAll && !matched {
			return false
		}
	}
	return mode == MatchAll
}
