// Showshelf - Streaming Catalog Cleaning, Enrichment, and Recommendations
// Copyright 2026 Showshelf Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showshelf/showshelf

package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/showshelf/showshelf/internal/config"
	"github.com/showshelf/showshelf/internal/models"
	"github.com/showshelf/showshelf/internal/store"
)

const testTitlesCSV = `show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description
s1,Movie,Ferris Bueller's Day Off,John Hughes,Matthew Broderick,United States,"January 1, 2021",1986,PG-13,103 min,"Classic Movies, Comedies",A high school slacker skips school for a day.
s2,Movie,Quiet Film,Someone,Someone Else,France,"March 5, 2020",2019,R,95 min,Dramas,A quiet meditation on loss.
`

const testBasicsTSV = "tconst\ttitleType\tprimaryTitle\toriginalTitle\tstartYear\n" +
	"tt1\tmovie\tFerris Bueller's Day Off\tFerris Bueller's Day Off\t1986\n" +
	"tt2\tmovie\tQuiet Film\tQuiet Film\t2019\n"

const testRatingsTSV = "tconst\taverageRating\tnumVotes\n" +
	"tt1\t7.8\t350000\n" +
	"tt2\t6.4\t900\n"

// newTestServer builds a router over a loaded fixture catalog.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:            8675,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   1000,
			RateLimitWindow: time.Minute,
		},
		Data: config.DataConfig{
			TitlesPath:        filepath.Join(dir, "titles.csv"),
			BasicsPath:        filepath.Join(dir, "basics.tsv"),
			RatingsPath:       filepath.Join(dir, "ratings.tsv"),
			EpisodesPerSeason: 10,
			MinutesPerEpisode: 45,
			StandardizeGenres: true,
		},
		Recommend: config.RecommendConfig{DefaultLimit: 10, MaxLimit: 50},
	}
	for path, content := range map[string]string{
		cfg.Data.TitlesPath:  testTitlesCSV,
		cfg.Data.BasicsPath:  testBasicsTSV,
		cfg.Data.RatingsPath: testRatingsTSV,
	} {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("Failed to write fixture: %v", err)
		}
	}

	catalog := store.New(cfg.Data, 5*time.Minute)
	if _, err := catalog.Load(); err != nil {
		t.Fatalf("Failed to load fixture catalog: %v", err)
	}

	srv := httptest.NewServer(NewRouter(catalog, cfg, "test").Setup())
	t.Cleanup(srv.Close)
	return srv
}

// getAPI fetches url and decodes the response envelope.
func getAPI(t *testing.T, url string) (*http.Response, APIResponse) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer res.Body.Close()

	var body APIResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return res, body
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	res, body := getAPI(t, srv.URL+"/api/v1/health")
	if res.StatusCode != http.StatusOK || !body.Success {
		t.Errorf("health: status=%d success=%v", res.StatusCode, body.Success)
	}

	res, _ = getAPI(t, srv.URL+"/api/v1/health/live")
	if res.StatusCode != http.StatusOK {
		t.Errorf("live: status=%d", res.StatusCode)
	}

	res, _ = getAPI(t, srv.URL+"/api/v1/health/ready")
	if res.StatusCode != http.StatusOK {
		t.Errorf("ready: status=%d", res.StatusCode)
	}
}

func TestCatalogStatsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	res, body := getAPI(t, srv.URL+"/api/v1/catalog/stats")
	if res.StatusCode != http.StatusOK || !body.Success {
		t.Fatalf("stats: status=%d success=%v", res.StatusCode, body.Success)
	}

	raw, _ := json.Marshal(body.Data)
	var stats models.CatalogStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		t.Fatalf("Failed to decode stats: %v", err)
	}
	if stats.RawCount != 2 || stats.EnrichedCount != 2 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestGenresEndpoint(t *testing.T) {
	srv := newTestServer(t)

	res, body := getAPI(t, srv.URL+"/api/v1/catalog/genres")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("genres: status=%d", res.StatusCode)
	}

	raw, _ := json.Marshal(body.Data)
	var genres []string
	if err := json.Unmarshal(raw, &genres); err != nil {
		t.Fatalf("Failed to decode genres: %v", err)
	}
	if len(genres) == 0 {
		t.Fatal("Expected genres")
	}
	if body.Meta == nil || body.Meta.Count != len(genres) {
		t.Errorf("Expected meta count %d, got %+v", len(genres), body.Meta)
	}
}

func TestRecommendationsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	res, body := getAPI(t, srv.URL+"/api/v1/recommendations?keywords=school&genres=Classic&keyword_mode=any&genre_mode=any&limit=10")
	if res.StatusCode != http.StatusOK || !body.Success {
		t.Fatalf("recommendations: status=%d success=%v", res.StatusCode, body.Success)
	}

	raw, _ := json.Marshal(body.Data)
	var recs []models.Recommendation
	if err := json.Unmarshal(raw, &recs); err != nil {
		t.Fatalf("Failed to decode recommendations: %v", err)
	}
	if len(recs) != 1 || recs[0].Title != "Ferris Bueller's Day Off" {
		t.Errorf("Unexpected recommendations: %+v", recs)
	}
}

func TestRecommendationsEmptyResult(t *testing.T) {
	srv := newTestServer(t)

	res, body := getAPI(t, srv.URL+"/api/v1/recommendations?keywords=nonexistent")
	if res.StatusCode != http.StatusOK || !body.Success {
		t.Fatalf("Expected empty success, status=%d success=%v", res.StatusCode, body.Success)
	}
	if body.Meta == nil || body.Meta.Count != 0 {
		t.Errorf("Expected zero count, got %+v", body.Meta)
	}
}

func TestRecommendationsInvalidParams(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name  string
		query string
	}{
		{"bad mode", "keyword_mode=some"},
		{"non-integer limit", "limit=abc"},
		{"zero limit", "limit=0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, body := getAPI(t, srv.URL+"/api/v1/recommendations?"+tt.query)
			if res.StatusCode != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", res.StatusCode)
			}
			if body.Success || body.Error == nil {
				t.Errorf("Expected error envelope, got %+v", body)
			}
		})
	}
}

func TestRecommendationsLimitCappedAtMax(t *testing.T) {
	srv := newTestServer(t)

	// Over-max limit is clamped rather than rejected.
	res, body := getAPI(t, srv.URL+"/api/v1/recommendations?limit=500")
	if res.StatusCode != http.StatusOK || !body.Success {
		t.Errorf("Expected clamped limit to succeed, status=%d", res.StatusCode)
	}
}

func TestAnalyticsEndpoints(t *testing.T) {
	srv := newTestServer(t)

	res, body := getAPI(t, srv.URL+"/api/v1/analytics/rating-distribution")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("rating-distribution: status=%d", res.StatusCode)
	}
	raw, _ := json.Marshal(body.Data)
	var dist models.RatingDistribution
	if err := json.Unmarshal(raw, &dist); err != nil {
		t.Fatalf("Failed to decode distribution: %v", err)
	}
	// Only Quiet Film (2019, R) is in range.
	if len(dist.Years) != 1 || dist.Years[0] != 2019 {
		t.Errorf("Unexpected years: %v", dist.Years)
	}

	res, body = getAPI(t, srv.URL+"/api/v1/analytics/genre-trends")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("genre-trends: status=%d", res.StatusCode)
	}
	raw, _ = json.Marshal(body.Data)
	var trends []models.GenreTrend
	if err := json.Unmarshal(raw, &trends); err != nil {
		t.Fatalf("Failed to decode trends: %v", err)
	}
	if len(trends) == 0 {
		t.Error("Expected genre trends")
	}
}

func TestReloadEndpoint(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Post(srv.URL+"/api/v1/catalog/reload", "application/json", nil)
	if err != nil {
		t.Fatalf("Reload request failed: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Errorf("reload: status=%d", res.StatusCode)
	}

	var body APIResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode reload response: %v", err)
	}
	if !body.Success {
		t.Errorf("Expected success envelope, got %+v", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("Metrics request failed: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("metrics: status=%d", res.StatusCode)
	}
}

func TestStaticUIServed(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("UI request failed: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("UI: status=%d", res.StatusCode)
	}

	// Unknown routes fall back to the UI.
	res2, err := http.Get(srv.URL + "/some/unknown/route")
	if err != nil {
		t.Fatalf("Fallback request failed: %v", err)
	}
	defer res2.Body.Close()
	if res2.StatusCode != http.StatusOK {
		t.Errorf("fallback: status=%d", res2.StatusCode)
	}
}

func TestRequestIDHeaderPresent(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer res.Body.Close()
	if res.Header.Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID header")
	}
}
