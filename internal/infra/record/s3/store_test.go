package s3

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hotelres/internal/record/core"
)

func TestMockStoreWriteReadOverwrite(t *testing.T) {
	ctx := context.Background()
	store, objects := NewMockForTests()
	if store.Driver() != core.DriverS3 || store.Bucket() != "mock-bucket" {
		t.Fatalf("unexpected store metadata")
	}
	if _, err := store.Read(ctx, "hotels"); !errors.Is(err, core.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	if err := store.Write(ctx, "hotels", []byte(`[{"hotel_id":"h1"}]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := store.Write(ctx, "hotels", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := store.Read(ctx, "hotels")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "[]" {
		t.Fatalf("expected overwritten object, got %s", got)
	}
	if _, ok := objects.Get("hotelres/hotels.json"); !ok {
		t.Fatalf("expected object under prefixed key")
	}
}

func TestMockStoreServerFailure(t *testing.T) {
	ctx := context.Background()
	store, objects := NewMockForTests()
	objects.SetFail(true)
	if err := store.Write(ctx, "hotels", []byte(`[]`)); err == nil {
		t.Fatalf("expected write failure")
	}
	if _, err := store.Read(ctx, "hotels"); err == nil || errors.Is(err, core.ErrNotExist) {
		t.Fatalf("expected transport failure, got %v", err)
	}
}

func TestKeyUsesPrefix(t *testing.T) {
	s := newWithClient(nil, "b", "/custom/")
	if got := s.Key("customers"); got != "custom/customers.json" {
		t.Fatalf("unexpected key %s", got)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil || !strings.Contains(err.Error(), "bucket") {
		t.Fatalf("expected bucket error, got %v", err)
	}
}

func TestDecodeChunked(t *testing.T) {
	raw := []byte("5\r\nhello\r\n3;chunk-signature=x\r\n!!!\r\n0\r\nx-amz-checksum-crc32:abc\r\n\r\n")
	got, ok := decodeChunked(raw)
	if !ok || string(got) != "hello!!!" {
		t.Fatalf("unexpected decode %q ok=%v", got, ok)
	}
	if _, ok := decodeChunked([]byte("zz\r\n")); ok {
		t.Fatalf("expected failure for bad header")
	}
}
