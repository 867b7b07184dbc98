package core

import (
	"context"
	"time"
)

// Logger receives structured diagnostics from the services.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// MetricsRecorder observes the outcome and latency of service operations.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer starts a span around a service operation.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan is ended exactly once with the operation's error, if any.
type TraceSpan interface {
	End(err error)
}

type noopMetrics struct{}

func (noopMetrics) Observe(context.Context, string, bool, time.Duration) {}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error) {}

// Option configures a service.
type Option func(*options)

type options struct {
	logger  Logger
	metrics MetricsRecorder
	tracer  Tracer
	now     func() time.Time
	newID   func() string
}

// WithLogger sets the logger used for diagnostics. Nil keeps the no-op logger.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetricsRecorder sets the recorder notified after every operation.
func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(o *options) {
		if recorder != nil {
			o.metrics = recorder
		}
	}
}

// WithTracer sets the tracer wrapping every operation.
func WithTracer(tracer Tracer) Option {
	return func(o *options) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}

// WithClock overrides the clock used to time operations.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator overrides how ids are assigned to records created without one.
func WithIDGenerator(gen func() string) Option {
	return func(o *options) {
		if gen != nil {
			o.newID = gen
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:  noopLogger{},
		metrics: noopMetrics{},
		tracer:  noopTracer{},
		now:     time.Now,
		newID:   newUUID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// run wraps fn with tracing, metrics and failure logging. Client errors are
// logged at Warn, storage errors at Error.
func (o options) run(ctx context.Context, operation string, fn func(context.Context) error) error {
	ctx, span := o.tracer.Start(ctx, operation)
	start := o.now()
	err := fn(ctx)
	o.metrics.Observe(ctx, operation, err == nil, o.now().Sub(start))
	span.End(err)
	if err != nil {
		if isStorage(err) {
			o.logger.Error("operation failed", "operation", operation, "error", err)
		} else {
			o.logger.Warn("operation failed", "operation", operation, "error", err)
		}
		return err
	}
	o.logger.Debug("operation succeeded", "operation", operation)
	return nil
}
