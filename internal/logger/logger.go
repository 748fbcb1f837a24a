// Package logger provides a wrapper around logrus for structured logging.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log formats
const (
	FormatJSON = "json"
	FormatText = "text"
)

// NewLogger creates a new configured logger instance writing to stdout
func NewLogger(logLevel, format string) *logrus.Logger {
	return NewLoggerTo(os.Stdout, logLevel, format)
}

// NewLoggerTo is NewLogger with an explicit output.
func NewLoggerTo(out io.Writer, logLevel, format string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	if format == FormatJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s', defaulting to info", logLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
