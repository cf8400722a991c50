package telemetry

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog with service context
type Logger struct {
	zerolog.Logger
}

// NewLogger creates a new structured logger tagged with the service name
func NewLogger(service string) *Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	logger := zerolog.New(os.Stderr).
		With().
		Timestamp().
		Str("service", service).
		Logger()

	return &Logger{Logger: logger}
}

// NewConsoleLogger creates a human-readable logger for CLI use
func NewConsoleLogger(service string, out io.Writer) *Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: out}).
		With().
		Timestamp().
		Str("service", service).
		Logger()

	return &Logger{Logger: logger}
}

// WithContext returns a logger with context attached
func (l *Logger) WithContext(ctx context.Context) *zerolog.Logger {
	logger := l.Logger.With().Ctx(ctx).Logger()
	return &logger
}

// LogScanError logs an isolated enumeration failure as a warning.
// The run continues with partial results.
func (l *Logger) LogScanError(ctx context.Context, region, resourceType string, err error) {
	l.WithContext(ctx).Warn().
		Err(err).
		Str("region", region).
		Str("resource_type", resourceType).
		Msg("enumeration failed, continuing with partial results")
}

// LogOutcome logs a terminal per-candidate result
func (l *Logger) LogOutcome(ctx context.Context, region, resourceType, id, result, detail string) {
	event := l.WithContext(ctx).Info()
	if result == "failed" {
		event = l.WithContext(ctx).Error()
	}
	event.
		Str("region", region).
		Str("resource_type", resourceType).
		Str("resource_id", id).
		Str("result", result).
		Str("detail", detail).
		Msg("reclaim outcome")
}
