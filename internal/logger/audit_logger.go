package logger

import (
	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogBacktestImported records an upload of a backtest record.
func (al *AuditLogger) LogBacktestImported(id, symbol, timeframe, version string, created bool) {
	action := "updated"
	if created {
		action = "created"
	}
	al.WithFields(logrus.Fields{
		"backtest_id": id,
		"symbol":      symbol,
		"timeframe":   timeframe,
		"version":     version,
		"action":      action,
	}).Info("Backtest record imported")
}

// LogBacktestDeleted records removal of a backtest record.
func (al *AuditLogger) LogBacktestDeleted(id, symbol string) {
	al.WithFields(logrus.Fields{
		"backtest_id": id,
		"symbol":      symbol,
		"action":      "deleted",
	}).Warn("Backtest record deleted")
}
