// Showshelf - Streaming Catalog Cleaning, Enrichment, and Recommendations
// Copyright 2026 Showshelf Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showshelf/showshelf

// Package analytics computes the precomputed chart tables served alongside
// recommendations: the year-by-rating movie count matrix and per-genre
// catalog-addition trends.
package analytics

import (
	"sort"

	"github.com/showshelf/showshelf/internal/models"
)

// ratingDistributionMinYear bounds the rating table to recent releases;
// older years make the matrix too sparse to chart.
const ratingDistributionMinYear = 2016

// RatingDistribution counts movies per (release year, rating) pair for
// years >= 2016. Records missing either field are excluded. Years and
// ratings are sorted ascending; Counts[i][j] is the count for Years[i]
// and Ratings[j].
func RatingDistribution(titles []models.Title) models.RatingDistribution {
	counts := make(map[int]map[string]int)
	ratingSet := make(map[string]struct{})

	for _, t := range titles {
		if !t.IsMovie || t.ReleaseYear == nil || t.Rating == "" {
			continue
		}
		year := *t.ReleaseYear
		if year < ratingDistributionMinYear {
			continue
		}
		if counts[year] == nil {
			counts[year] = make(map[string]int)
		}
		counts[year][t.Rating]++
		ratingSet[t.Rating] = struct{}{}
	}

	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	ratings := make([]string, 0, len(ratingSet))
	for r := range ratingSet {
		ratings = append(ratings, r)
	}
	sort.Strings(ratings)

	matrix := make([][]int, len(years))
	for i, y := range years {
		row := make([]int, len(ratings))
		for j, r := range ratings {
			row[j] = counts[y][r]
		}
		matrix[i] = row
	}

	return models.RatingDistribution{
		Years:   years,
		Ratings: ratings,
		Counts:  matrix,
	}
}

// GenreTrends counts titles per genre per catalog-addition year. Records
// without a parsed addition year are excluded. Genres are sorted
// alphabetically; each genre's points are sorted by year ascending.
func GenreTrends(titles []models.Title) []models.GenreTrend {
	byGenre := make(map[string]map[int]int)

	for _, t := range titles {
		if t.YearAdded == nil {
			continue
		}
		year := *t.YearAdded
		for _, g := range t.Genres {
			if g == "" || g == "Unknown" {
				continue
			}
			if byGenre[g] == nil {
				byGenre[g] = make(map[int]int)
			}
			byGenre[g][year]++
		}
	}

	genres := make([]string, 0, len(byGenre))
	for g := range byGenre {
		genres = append(genres, g)
	}
	sort.Strings(genres)

	trends := make([]models.GenreTrend, 0, len(genres))
	for _, g := range genres {
		years := make([]int, 0, len(byGenre[g]))
		for y := range byGenre[g] {
			years = append(years, y)
		}
		sort.Ints(years)

		points := make([]models.GenreTrendPoint, 0, len(years))
		for _, y := range years {
			points = append(points, models.GenreTrendPoint{YearAdded: y, Count: byGenre[g][y]})
		}
		trends = append(trends, models.GenreTrend{Genre: g, Points: points})
	}

	return trends
}

// Genres returns the sorted distinct genre names across the collection,
// excluding the "Unknown" fill.
func Genres(titles []models.Title) []string {
	set := make(map[string]struct{})
	for _, t := range titles {
		for _, g := range t.Genres {
			if g == "" || g == "Unknown" {
				continue
			}
			set[g] = struct{}{}
		}
	}

	genres := make([]string, 0, len(set))
	for g := range set {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}
