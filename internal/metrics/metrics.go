// Showshelf - Streaming Catalog Cleaning, Enrichment, and Recommendations
// Copyright 2026 Showshelf Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showshelf/showshelf

// Package metrics registers the Prometheus instrumentation for the
// pipeline and the HTTP surface: catalog load performance, dataset sizes,
// recommendation query throughput, cache efficiency, and API latency.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Catalog load metrics
	CatalogLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_load_duration_seconds",
			Help:    "Duration of full catalog pipeline runs in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	CatalogLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_loads_total",
			Help: "Total number of catalog loads",
		},
		[]string{"trigger", "result"}, // trigger: "startup", "reload"; result: "success", "error"
	)

	CatalogTitles = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_titles",
			Help: "Number of titles in the loaded catalog by pipeline stage",
		},
		[]string{"stage"}, // "raw", "cleaned", "enriched"
	)

	CatalogLastLoadTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_last_load_timestamp",
			Help: "Unix timestamp of the last successful catalog load",
		},
	)

	// Recommendation query metrics
	RecommendQueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_queries_total",
			Help: "Total number of recommendation queries",
		},
	)

	RecommendResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_result_size",
			Help:    "Number of records returned per recommendation query",
			Buckets: []float64{0, 1, 5, 10, 20, 50},
		},
	)

	RecommendEmptyResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_empty_results_total",
			Help: "Total number of recommendation queries returning no records",
		},
	)

	// Result cache metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)
)

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCatalogLoad records one pipeline run and, on success, the dataset
// sizes per stage.
func RecordCatalogLoad(trigger string, duration time.Duration, raw, cleaned, enriched int, err error) {
	if err != nil {
		CatalogLoadsTotal.WithLabelValues(trigger, "error").Inc()
		return
	}
	CatalogLoadsTotal.WithLabelValues(trigger, "success").Inc()
	CatalogLoadDuration.Observe(duration.Seconds())
	CatalogTitles.WithLabelValues("raw").Set(float64(raw))
	CatalogTitles.WithLabelValues("cleaned").Set(float64(cleaned))
	CatalogTitles.WithLabelValues("enriched").Set(float64(enriched))
	CatalogLastLoadTimestamp.SetToCurrentTime()
}

// RecordRecommendQuery records one recommendation query and its result size.
func RecordRecommendQuery(resultCount int) {
	RecommendQueriesTotal.Inc()
	RecommendResultSize.Observe(float64(resultCount))
	if resultCount == 0 {
		RecommendEmptyResults.Inc()
	}
}
