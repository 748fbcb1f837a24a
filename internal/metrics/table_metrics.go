package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Table pipeline counter vectors
var (
	SheetFallbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sheet_fallbacks_total",
		Help:      "Sheets that could not be read during metric derivation, by sheet",
	}, []string{"sheet"})
	TableRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "table_requests_total",
		Help:      "Table views served by collection",
	}, []string{"collection"})
	ViewIssuesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_issues_total",
		Help:      "View state parameters ignored or reset, by collection",
	}, []string{"collection"})
	SummaryCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summary_cache_total",
		Help:      "Summary cache lookups by result",
	}, []string{"result"})
)

// Table pipeline histogram vectors
var (
	PipelineDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pipeline_duration_seconds",
		Help:      "Duration of filter, sort and paginate runs by collection",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"collection"})
)

// RecordSheetFallback records a sheet that degraded to zeros.
func RecordSheetFallback(sheet string) {
	SheetFallbacksTotal.WithLabelValues(sheet).Inc()
}

// RecordTableRequest records one served view and its pipeline duration.
func RecordTableRequest(collection string, issues int, duration time.Duration) {
	TableRequestsTotal.WithLabelValues(collection).Inc()
	if issues > 0 {
		ViewIssuesTotal.WithLabelValues(collection).Add(float64(issues))
	}
	PipelineDuration.WithLabelValues(collection).Observe(duration.Seconds())
}

// RecordSummaryCache records a summary cache lookup.
func RecordSummaryCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	SummaryCacheTotal.WithLabelValues(result).Inc()
}
