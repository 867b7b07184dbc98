package cli

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// keptExporter holds finished spans across Shutdown so they can be inspected.
type keptExporter struct {
	*tracetest.InMemoryExporter
}

func (keptExporter) Shutdown(context.Context) error { return nil }

func TestCommandsExportSpansWhenJaegerConfigured(t *testing.T) {
	exp := keptExporter{tracetest.NewInMemoryExporter()}
	var gotEndpoint string
	orig := newSpanExporter
	newSpanExporter = func(endpoint string) (sdktrace.SpanExporter, error) {
		gotEndpoint = endpoint
		return exp, nil
	}
	defer func() { newSpanExporter = orig }()
	t.Setenv("HOTELRES_JAEGER_ENDPOINT", "http://jaeger:14268/api/traces")

	mustRun(t, t.TempDir(), "hotel", "create", "--id", "H1", "--name", "Inn", "--rooms", "1")

	if gotEndpoint != "http://jaeger:14268/api/traces" {
		t.Fatalf("exporter built for %q", gotEndpoint)
	}
	spans := exp.GetSpans()
	if len(spans) != 1 || spans[0].Name != "hotel.create" {
		t.Fatalf("expected one hotel.create span, got %+v", spans)
	}
	var service string
	for _, kv := range spans[0].Resource.Attributes() {
		if kv.Key == "service.name" {
			service = kv.Value.AsString()
		}
	}
	if service != serviceName {
		t.Fatalf("unexpected service.name %q", service)
	}
}

func TestCommandsSkipTracingByDefault(t *testing.T) {
	orig := newSpanExporter
	newSpanExporter = func(string) (sdktrace.SpanExporter, error) {
		t.Fatalf("exporter must not be built without an endpoint")
		return nil, nil
	}
	defer func() { newSpanExporter = orig }()
	t.Setenv("HOTELRES_JAEGER_ENDPOINT", "")
	mustRun(t, t.TempDir(), "customer", "list")
}
