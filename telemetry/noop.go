package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type (
	// NoopLogger discards all log messages.
	NoopLogger struct{}

	// NoopMetrics discards all metrics.
	NoopMetrics struct{}

	// NoopTracer creates no-op spans.
	NoopTracer struct{}

	noopSpan struct{}
)

// NewNoopLogger constructs a Logger that discards everything.
func NewNoopLogger() Logger { return NoopLogger{} }

// NewNoopMetrics constructs a Metrics recorder that discards everything.
func NewNoopMetrics() Metrics { return NoopMetrics{} }

// NewNoopTracer constructs a Tracer whose spans do nothing.
func NewNoopTracer() Tracer { return NoopTracer{} }

// Debug implements Logger.
func (NoopLogger) Debug(context.Context, string, ...any) {}

// Info implements Logger.
func (NoopLogger) Info(context.Context, string, ...any) {}

// Warn implements Logger.
func (NoopLogger) Warn(context.Context, string, ...any) {}

// Error implements Logger.
func (NoopLogger) Error(context.Context, string, ...any) {}

// IncCounter implements Metrics.
func (NoopMetrics) IncCounter(string, float64, ...string) {}

// RecordTimer implements Metrics.
func (NoopMetrics) RecordTimer(string, time.Duration, ...string) {}

// Start implements Tracer.
func (NoopTracer) Start(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, Span) {
	return ctx, noopSpan{}
}

// End implements Span.
func (noopSpan) End(...trace.SpanEndOption) {}

// AddEvent implements Span.
func (noopSpan) AddEvent(string, ...any) {}

// RecordError implements Span.
func (noopSpan) RecordError(error, ...trace.EventOption) {}
