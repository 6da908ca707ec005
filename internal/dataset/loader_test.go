// Showshelf - Streaming Catalog Cleaning, Enrichment, and Recommendations
// Copyright 2026 Showshelf Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showshelf/showshelf

package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestLoadTitles(t *testing.T) {
	csvData := `show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description
s1,Movie,Ferris Bueller's Day Off,John Hughes,"Matthew Broderick, Alan Ruck",United States,"January 1, 2021",1986,PG-13,103 min,"Comedies, Cult Movies",A teen takes a day off.
s2,TV Show,Breaking Bad,,"Bryan Cranston, Aaron Paul",United States,"July 1, 2017",2008,TV-MA,5 Seasons,"Crime TV Shows, TV Dramas",A chemistry teacher turns to crime.
`
	path := writeFixture(t, "titles.csv", csvData)

	titles, err := LoadTitles(path)
	if err != nil {
		t.Fatalf("LoadTitles failed: %v", err)
	}
	if len(titles) != 2 {
		t.Fatalf("Expected 2 titles, got %d", len(titles))
	}

	first := titles[0]
	if first.ShowID != "s1" {
		t.Errorf("Expected show_id s1, got %q", first.ShowID)
	}
	if first.Title != "Ferris Bueller's Day Off" {
		t.Errorf("Unexpected title %q", first.Title)
	}
	if first.Cast != "Matthew Broderick, Alan Ruck" {
		t.Errorf("Quoted cast field not preserved: %q", first.Cast)
	}
	if titles[1].Director != "" {
		t.Errorf("Expected empty director, got %q", titles[1].Director)
	}
	if titles[1].Duration != "5 Seasons" {
		t.Errorf("Expected raw duration preserved, got %q", titles[1].Duration)
	}
}

func TestLoadTitlesColumnOrderIndependent(t *testing.T) {
	// Same columns, shuffled order. Header addressing must still work.
	csvData := `title,show_id,type,director,cast,country,date_added,release_year,rating,duration,listed_in,description
Inception,s9,Movie,Christopher Nolan,Leonardo DiCaprio,United States,"June 1, 2020",2010,PG-13,148 min,Thrillers,A mind heist.
`
	path := writeFixture(t, "titles.csv", csvData)

	titles, err := LoadTitles(path)
	if err != nil {
		t.Fatalf("LoadTitles failed: %v", err)
	}
	if len(titles) != 1 || titles[0].ShowID != "s9" || titles[0].Title != "Inception" {
		t.Errorf("Header-addressed load failed: %+v", titles)
	}
}

func TestLoadTitlesMissingColumn(t *testing.T) {
	path := writeFixture(t, "titles.csv", "show_id,type,title\ns1,Movie,Test\n")

	if _, err := LoadTitles(path); err == nil {
		t.Error("Expected error for missing required columns")
	}
}

func TestLoadTitlesMissingFile(t *testing.T) {
	if _, err := LoadTitles(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadExternalRatings(t *testing.T) {
	basics := "tconst\ttitleType\tprimaryTitle\toriginalTitle\tisAdult\tstartYear\tendYear\truntimeMinutes\tgenres\n" +
		"tt1\tmovie\tFerris Bueller's Day Off\tFerris Bueller's Day Off\t0\t1986\t\\N\t103\tComedy\n" +
		"tt2\ttvSeries\tBreaking Bad\tBreaking Bad\t0\t2008\t2013\t49\tCrime,Drama\n" +
		"tt3\tmovie\tUnscored Film\tUnscored Film\t0\t1999\t\\N\t90\tDrama\n" +
		"tt4\tmovie\tNo Year\tNo Year\t0\t\\N\t\\N\t\\N\tDrama\n"
	ratings := "tconst\taverageRating\tnumVotes\n" +
		"tt1\t7.8\t350000\n" +
		"tt2\t9.5\t1900000\n" +
		"tt4\t6.1\t1200\n" +
		"tt5\tbad\t10\n"

	basicsPath := writeFixture(t, "basics.tsv", basics)
	ratingsPath := writeFixture(t, "ratings.tsv", ratings)

	got, err := LoadExternalRatings(basicsPath, ratingsPath)
	if err != nil {
		t.Fatalf("LoadExternalRatings failed: %v", err)
	}

	// tt2 is a tvSeries, tt3 has no votes, so only tt1 and tt4 survive.
	if len(got) != 2 {
		t.Fatalf("Expected 2 ratings, got %d: %+v", len(got), got)
	}

	byID := make(map[string]int)
	for i, r := range got {
		byID[r.ID] = i
	}

	r1 := got[byID["tt1"]]
	if r1.PrimaryTitle != "Ferris Bueller's Day Off" || r1.AverageRating != 7.8 || r1.NumVotes != 350000 {
		t.Errorf("Unexpected tt1: %+v", r1)
	}
	if r1.StartYear == nil || *r1.StartYear != 1986 {
		t.Errorf("Expected start year 1986, got %v", r1.StartYear)
	}

	r4 := got[byID["tt4"]]
	if r4.StartYear != nil {
		t.Errorf("Expected nil start year for \\N sentinel, got %d", *r4.StartYear)
	}
}

func TestLoadExternalRatingsMissingFile(t *testing.T) {
	dir := t.TempDir()
	ratingsPath := writeFixture(t, "ratings.tsv", "tconst\taverageRating\tnumVotes\n")

	if _, err := LoadExternalRatings(filepath.Join(dir, "nope.tsv"), ratingsPath); err == nil {
		t.Error("Expected error for missing basics file")
	}
	if _, err := LoadExternalRatings(ratingsPath, filepath.Join(dir, "nope.tsv")); err == nil {
		t.Error("Expected error for missing ratings file")
	}
}
