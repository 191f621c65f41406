package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rating Lifecycle Metrics
var (
	// RatingsCreatedTotal tracks ratings accepted through POST /ratings by star value
	RatingsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratings_created_total",
			Help: "Total ratings created by star value (1-5)",
		},
		[]string{"rating"},
	)

	// RatingsDeletedTotal tracks hard-deleted ratings
	RatingsDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratings_deleted_total",
			Help: "Total ratings deleted",
		},
	)

	// RatingsImportedTotal tracks ratings accepted through bulk import
	RatingsImportedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratings_imported_total",
			Help: "Total ratings accepted through bulk import",
		},
	)
)

// Analytics Metrics
var (
	// AnalyticsRequestsTotal tracks analytics computations by report kind
	AnalyticsRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_requests_total",
			Help: "Total analytics requests by report (summary/distribution/trends/sentiment)",
		},
		[]string{"report"},
	)

	// AnalyticsDatasetSize tracks how many ratings each analytics computation consumed
	AnalyticsDatasetSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analytics_dataset_size",
			Help:    "Number of ratings fed into an analytics computation",
			Buckets: []float64{0, 10, 100, 1000, 10000, 100000},
		},
	)

	// SummaryCacheHits tracks summaries served from the redis cache
	SummaryCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "summary_cache_hits_total",
			Help: "Total summary lookups served from the redis cache",
		},
	)

	// SummaryCacheMisses tracks summaries recomputed from postgres
	SummaryCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "summary_cache_misses_total",
			Help: "Total summary lookups that fell through to postgres",
		},
	)
)

// Export/Import Metrics
var (
	// ExportRequestsTotal tracks exports by format
	ExportRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "export_requests_total",
			Help: "Total export requests by format (json/csv)",
		},
		[]string{"format"},
	)

	// ImportBatchesTotal tracks bulk import batches by result
	ImportBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_batches_total",
			Help: "Total bulk import batches by result (accepted/rejected)",
		},
		[]string{"result"},
	)
)

// Database Metrics
var (
	// DBQueryDuration tracks database query duration by query name
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"query"},
	)

	// DBErrorsTotal tracks database errors by query name
	DBErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_errors_total",
			Help: "Total database errors by query",
		},
		[]string{"query"},
	)
)

// Build Information Metrics
var (
	// BuildInfo is a gauge that always returns 1, with build metadata as labels
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "build_info",
			Help: "Build information with version, commit, build_time, and go_version labels (value is always 1)",
		},
		[]string{"version", "commit", "build_time", "go_version"},
	)
)

// HTTP Error Metrics
// Note: http_errors_total{type} is provided by the internal/errors package
