// Package metrics provides the centralized Prometheus metrics registry for pairdesk.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pairdesk"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	BacktestsImportedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backtests_imported_total",
		Help:      "Total number of backtest uploads by outcome",
	}, []string{"action"})
	BacktestsDeletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backtests_deleted_total",
		Help:      "Total number of backtest records deleted",
	})
	SummaryRefreshesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summary_refreshes_total",
		Help:      "Total number of summary recomputations by status",
	}, []string{"status"})
)

// Gauge metrics
var (
	BacktestsLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "backtests_loaded",
		Help:      "Number of backtest records in the last full load",
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(collectors.NewGoCollector())
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		registry.MustRegister(BacktestsImportedTotal)
		registry.MustRegister(BacktestsDeletedTotal)
		registry.MustRegister(SummaryRefreshesTotal)
		registry.MustRegister(BacktestsLoaded)

		// table pipeline metrics
		registry.MustRegister(SheetFallbacksTotal)
		registry.MustRegister(TableRequestsTotal)
		registry.MustRegister(ViewIssuesTotal)
		registry.MustRegister(PipelineDuration)
		registry.MustRegister(SummaryCacheTotal)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordBacktestImported records an upload; created distinguishes inserts from updates.
func RecordBacktestImported(created bool) {
	action := "updated"
	if created {
		action = "created"
	}
	BacktestsImportedTotal.WithLabelValues(action).Inc()
}

// RecordBacktestDeleted records a deletion.
func RecordBacktestDeleted() {
	BacktestsDeletedTotal.Inc()
}

// RecordSummaryRefresh records a summary recomputation.
func RecordSummaryRefresh(err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	SummaryRefreshesTotal.WithLabelValues(status).Inc()
}

// UpdateBacktestsLoaded sets the loaded backtests gauge.
func UpdateBacktestsLoaded(count int) {
	BacktestsLoaded.Set(float64(count))
}
