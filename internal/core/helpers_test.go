package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"hotelres/internal/infra/record/memory"
	recordcore "hotelres/internal/record/core"
	"hotelres/pkg/domain"
)

type logEntry struct {
	level string
	msg   string
	kv    []any
}

type captureLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (c *captureLogger) add(level, msg string, kv []any) {
	c.mu.Lock()
	c.entries = append(c.entries, logEntry{level: level, msg: msg, kv: kv})
	c.mu.Unlock()
}

func (c *captureLogger) Debug(msg string, kv ...any) { c.add("debug", msg, kv) }
func (c *captureLogger) Info(msg string, kv ...any)  { c.add("info", msg, kv) }
func (c *captureLogger) Warn(msg string, kv ...any)  { c.add("warn", msg, kv) }
func (c *captureLogger) Error(msg string, kv ...any) { c.add("error", msg, kv) }

func (c *captureLogger) count(level string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

type metricsCall struct {
	op       string
	success  bool
	duration time.Duration
}

type captureMetricsRecorder struct {
	calls []metricsCall
}

func (c *captureMetricsRecorder) Observe(_ context.Context, op string, success bool, duration time.Duration) {
	c.calls = append(c.calls, metricsCall{op: op, success: success, duration: duration})
}

func (c *captureMetricsRecorder) has(op string, success bool) bool {
	for _, call := range c.calls {
		if call.op == op && call.success == success {
			return true
		}
	}
	return false
}

type spanRecord struct {
	op  string
	err error
}

type captureTracer struct {
	started []string
	ended   []spanRecord
}

func (c *captureTracer) Start(ctx context.Context, op string) (context.Context, TraceSpan) {
	c.started = append(c.started, op)
	return ctx, &captureSpan{tracer: c, op: op}
}

type captureSpan struct {
	tracer *captureTracer
	op     string
}

func (s *captureSpan) End(err error) {
	s.tracer.ended = append(s.tracer.ended, spanRecord{op: s.op, err: err})
}

type fixture struct {
	store *memory.Store
	log   *captureLogger
	svc   *Services
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()
	store := memory.New()
	log := &captureLogger{}
	seq := 0
	base := []Option{
		WithLogger(log),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("gen-%d", seq)
		}),
	}
	return fixture{store: store, log: log, svc: NewServices(store, append(base, opts...)...)}
}

func (f fixture) mustCustomer(t *testing.T, id string) domain.Customer {
	t.Helper()
	c, err := f.svc.Customers.CreateCustomer(context.Background(), domain.Customer{ID: id, Name: "Name " + id, Email: id + "@example.com"})
	if err != nil {
		t.Fatalf("create customer %s: %v", id, err)
	}
	return c
}

func (f fixture) mustHotel(t *testing.T, id string, rooms int) domain.Hotel {
	t.Helper()
	h, err := f.svc.Hotels.CreateHotel(context.Background(), domain.Hotel{ID: id, Name: "Hotel " + id, Location: "Madrid", Rooms: rooms})
	if err != nil {
		t.Fatalf("create hotel %s: %v", id, err)
	}
	return h
}

func (f fixture) available(t *testing.T, hotelID string) int {
	t.Helper()
	h, err := f.svc.Hotels.GetHotel(context.Background(), hotelID)
	if err != nil {
		t.Fatalf("get hotel %s: %v", hotelID, err)
	}
	return h.RoomsAvailable
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// failOnCollection fails writes to one collection and delegates the rest.
type failOnCollection struct {
	name  string
	inner recordcore.Backend
}

func (f *failOnCollection) Driver() recordcore.Driver { return f.inner.Driver() }

func (f *failOnCollection) Read(ctx context.Context, name string) ([]byte, error) {
	return f.inner.Read(ctx, name)
}

func (f *failOnCollection) Write(ctx context.Context, name string, data []byte) error {
	if name == f.name {
		return errors.New("write refused")
	}
	return f.inner.Write(ctx, name, data)
}
