package metrics

import (
	"regexp"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sitetrack_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "path"},
	)

	ImportedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitetrack_imported_records_total",
			Help: "Records written by CSV imports",
		},
		[]string{"kind", "outcome"}, // outcome: inserted, rejected, failed
	)

	ImportChunkFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitetrack_import_chunk_failures_total",
			Help: "Import chunks the store refused",
		},
		[]string{"kind"},
	)

	SnapshotCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitetrack_snapshot_cache_total",
			Help: "Dashboard snapshot cache lookups",
		},
		[]string{"result"}, // hit, miss
	)

	SnapshotBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sitetrack_snapshot_build_seconds",
			Help:    "Time to load and aggregate a dashboard snapshot",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
		},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitetrack_events_published_total",
			Help: "Domain events handed to the broker",
		},
		[]string{"routing_key", "status"},
	)
)

var idSegment = regexp.MustCompile(`/[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

// RoutePath replaces UUID path segments with :id to keep label cardinality
// bounded.
func RoutePath(path string) string {
	return idSegment.ReplaceAllString(path, "/:id")
}

func RecordHTTPRequestDuration(method, path string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, RoutePath(path)).Observe(duration.Seconds())
}

func RecordImport(kind string, inserted, rejected, failed int) {
	ImportedRecords.WithLabelValues(kind, "inserted").Add(float64(inserted))
	ImportedRecords.WithLabelValues(kind, "rejected").Add(float64(rejected))
	ImportedRecords.WithLabelValues(kind, "failed").Add(float64(failed))
}

func IncrementImportChunkFailure(kind string) {
	ImportChunkFailures.WithLabelValues(kind).Inc()
}

func RecordSnapshotCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	SnapshotCache.WithLabelValues(result).Inc()
}

func RecordSnapshotBuild(duration time.Duration) {
	SnapshotBuildDuration.Observe(duration.Seconds())
}

func RecordEventPublished(routingKey string, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	EventsPublished.WithLabelValues(routingKey, status).Inc()
}
