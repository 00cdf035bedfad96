// Package telemetry defines the logging, metrics and tracing seams used by
// the session layer. Implementations delegate to Clue and OpenTelemetry; the
// interfaces are deliberately small so tests can swap in lightweight stubs
// (see Noop*).
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Logger captures structured logging. Keyvals alternate string keys and
// arbitrary values.
type Logger interface {
	Debug(ctx context.Context, msg string, keyvals ...any)
	Info(ctx context.Context, msg string, keyvals ...any)
	Warn(ctx context.Context, msg string, keyvals ...any)
	Error(ctx context.Context, msg string, keyvals ...any)
}

// Metrics exposes the counter and timer helpers used to instrument packet
// consumption. Tags alternate key and value strings.
type Metrics interface {
	IncCounter(name string, value float64, tags ...string)
	RecordTimer(name string, duration time.Duration, tags ...string)
}

// Tracer abstracts span creation so session code stays agnostic of the
// underlying OpenTelemetry provider.
type Tracer interface {
	Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, Span)
}

// Span is an in-flight tracing span.
type Span interface {
	End(opts ...trace.SpanEndOption)
	AddEvent(name string, attrs ...any)
	RecordError(err error, opts ...trace.EventOption)
}
