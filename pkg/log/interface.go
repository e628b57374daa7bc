// Package log provides structured logging for the library's estimators.
//
// The package defines a minimal, slog-compatible Logger interface with a
// zerolog-backed default implementation. Estimators obtain component-scoped
// loggers through GetLoggerWithName and attach structured attributes from
// attributes.go, so fit and predict operations produce uniform, filterable
// log records.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("loess")
//	logger.Info("smoothing started",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 1000,
//	    log.SpanKey, 0.5,
//	)
package log

import (
	"context"
)

// Logger is a leveled, structured logging interface compatible with
// Go's log/slog conventions. Fields are alternating key-value pairs.
//
// With returns a derived logger carrying pre-populated fields, which lets
// an estimator tag every record with its model name and configuration.
type Logger interface {
	// Debug logs detailed diagnostic information, such as per-window
	// weight sums during smoothing.
	Debug(msg string, fields ...any)

	// Info logs general operational information about fit and predict
	// calls.
	Info(msg string, fields ...any)

	// Warn logs conditions that do not stop the operation, such as an
	// ill-defined metric being replaced by a fallback value.
	Warn(msg string, fields ...any)

	// Error logs failures. If a field value is an error carrying a stack
	// trace, implementations may render it with full context.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	//
	// Example:
	//
	//	modelLogger := logger.With(
	//	    log.ModelNameKey, "KNNRegressor",
	//	    log.NeighborsKey, 5,
	//	)
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	// Use it to skip expensive attribute construction:
	//
	//	if logger.Enabled(ctx, log.LevelDebug) {
	//	    logger.Debug("window detail", "weights", weights)
	//	}
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates and configures loggers. It allows dependency
// injection and swapping the backend in tests.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger scoped to a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for loggers created by this
	// provider.
	SetLevel(level Level)
}
