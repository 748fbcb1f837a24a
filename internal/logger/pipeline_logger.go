package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// PipelineLogger logs metric derivation and table view events.
type PipelineLogger struct {
	*logrus.Entry
}

// NewPipelineLogger creates a new pipeline logger.
func NewPipelineLogger(baseLogger *logrus.Logger) *PipelineLogger {
	return &PipelineLogger{
		Entry: baseLogger.WithField("component", "pipeline"),
	}
}

// LogSheetFallback logs a sheet that could not be read and was treated as zeros.
func (pl *PipelineLogger) LogSheetFallback(backtestID, symbol, sheet string, err error) {
	pl.WithFields(logrus.Fields{
		"backtest_id": backtestID,
		"symbol":      symbol,
		"sheet":       sheet,
	}).WithError(err).Debug("Sheet unreadable, metrics default to zero")
}

// LogViewIssues logs view state parameters that were dropped or reset.
func (pl *PipelineLogger) LogViewIssues(collection string, issues []error) {
	for _, issue := range issues {
		pl.WithField("collection", collection).WithError(issue).Warn("View parameter ignored")
	}
}

// LogViewServed logs one run of the table pipeline.
func (pl *PipelineLogger) LogViewServed(collection string, totalItems, page, totalPages int, duration time.Duration) {
	pl.WithFields(logrus.Fields{
		"collection":  collection,
		"total_items": totalItems,
		"page":        page,
		"total_pages": totalPages,
		"duration_ms": float64(duration.Microseconds()) / 1000,
	}).Debug("Table view served")
}

// LogSummaryRefreshed logs a recomputation of the summary stats.
func (pl *PipelineLogger) LogSummaryRefreshed(totalBacktests int, bestSymbol string, duration time.Duration) {
	pl.WithFields(logrus.Fields{
		"total_backtests": totalBacktests,
		"best_performer":  bestSymbol,
		"duration_ms":     float64(duration.Microseconds()) / 1000,
	}).Info("Summary stats refreshed")
}
