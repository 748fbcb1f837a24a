// Package service holds the pairdesk use cases: backtest ingestion, metric
// derivation, summary stats and the list views behind the HTTP API.
package service

import (
	"time"

	"github.com/yourusername/pairdesk/internal/logger"
	"github.com/yourusername/pairdesk/internal/metrics"
	"github.com/yourusername/pairdesk/internal/table"
)

// Collection names used in logs and metrics.
const (
	CollectionBacktests     = "backtests"
	CollectionSubscriptions = "subscriptions"
	CollectionPayments      = "payments"
)

// TableSettings are the paging options shared by every list.
type TableSettings struct {
	PageSizes       []int
	DefaultPageSize int
}

func runView[T table.Record](collection string, view table.View[T], rows []T, state table.ViewState, log *logger.PipelineLogger) table.Result[T] {
	start := time.Now()
	result := view.Run(rows, state)
	elapsed := time.Since(start)

	metrics.RecordTableRequest(collection, len(result.Issues), elapsed)
	if len(result.Issues) > 0 {
		log.LogViewIssues(collection, result.Issues)
	}
	log.LogViewServed(collection, result.Page.TotalItems, result.State.Page, result.Page.TotalPages, elapsed)
	return result
}
