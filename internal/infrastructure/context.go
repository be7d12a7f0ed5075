package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// GenerateTraceID returns a fresh correlation ID for work that did not
// start from an HTTP request, such as watcher reloads.
func GenerateTraceID() string {
	return uuid.NewString()
}

// EnsureTraceID keeps an existing trace ID or attaches a new one.
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) != "" {
		return ctx
	}
	return WithTraceID(ctx, GenerateTraceID())
}

// WithComponent tags every record of logger with the component name.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With(slog.String("component", component))
}
