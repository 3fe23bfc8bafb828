// Package logging provides a logging abstraction layer that decouples the
// application from a specific logging framework and keeps components
// independently testable.
package logging

import "sync"

// Logger defines the interface for structured logging throughout the
// application.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

var (
	defaultLogger Logger
	defaultOnce   sync.Once
)

// GetLogger returns the process-wide default logger, creating a text-format
// info-level logrus adapter on first use.
func GetLogger() Logger {
	defaultOnce.Do(func() {
		if defaultLogger == nil {
			defaultLogger = NewLogrusAdapter("info", "text")
		}
	})
	return defaultLogger
}

// SetDefaultLogger replaces the process-wide default logger. Intended for
// main() after configuration has been loaded; a nil logger is ignored.
func SetDefaultLogger(logger Logger) {
	if logger == nil {
		return
	}
	defaultOnce.Do(func() {})
	defaultLogger = logger
}
