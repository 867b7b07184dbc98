package memory

import (
	"context"
	"errors"
	"testing"

	"hotelres/internal/record/core"
)

func TestStoreReadWrite(t *testing.T) {
	ctx := context.Background()
	s := New()
	if s.Driver() != core.DriverMemory {
		t.Fatalf("unexpected driver %s", s.Driver())
	}
	if _, err := s.Read(ctx, "hotels"); !errors.Is(err, core.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	payload := []byte(`[{"hotel_id":"h1"}]`)
	if err := s.Write(ctx, "hotels", payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	payload[0] = 'x'
	got, err := s.Read(ctx, "hotels")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != `[{"hotel_id":"h1"}]` {
		t.Fatalf("stored snapshot aliased caller buffer: %s", got)
	}
	got[0] = 'y'
	again, _ := s.Read(ctx, "hotels")
	if again[0] != '[' {
		t.Fatalf("read returned shared buffer")
	}
}

func TestStoreFailureInjection(t *testing.T) {
	ctx := context.Background()
	s := New()
	boom := errors.New("disk full")
	s.FailWrites(boom)
	if err := s.Write(ctx, "customers", []byte("[]")); !errors.Is(err, boom) {
		t.Fatalf("expected injected write error, got %v", err)
	}
	if _, ok := s.Raw("customers"); ok {
		t.Fatalf("failed write must not store data")
	}
	s.FailWrites(nil)
	if err := s.Write(ctx, "customers", []byte("[]")); err != nil {
		t.Fatalf("write after restore: %v", err)
	}
	s.FailReads(boom)
	if _, err := s.Read(ctx, "customers"); !errors.Is(err, boom) {
		t.Fatalf("expected injected read error, got %v", err)
	}
	s.FailReads(nil)
	s.Set("customers", []byte("{"))
	raw, ok := s.Raw("customers")
	if !ok || string(raw) != "{" {
		t.Fatalf("unexpected raw %q", raw)
	}
}
