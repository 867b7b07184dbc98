package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"hotelres/internal/record/core"
)

func newTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store
}

func TestStoreWriteReadOverwrite(t *testing.T) {
	ctx := context.Background()
	store := newTempStore(t)
	if _, err := store.Read(ctx, "customers"); !errors.Is(err, core.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	if err := store.Write(ctx, "customers", []byte("[1]")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := store.Write(ctx, "customers", []byte("[2]")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := store.Read(ctx, "customers")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "[2]" {
		t.Fatalf("expected overwritten snapshot, got %s", got)
	}
	path := filepath.Join(store.Root(), "customers.json")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Fatalf("unexpected mode %v", info.Mode())
	}
	entries, _ := os.ReadDir(store.Root())
	if len(entries) != 1 {
		t.Fatalf("expected temp files cleaned up, got %d entries", len(entries))
	}
}

func TestStoreRejectsEscapingNames(t *testing.T) {
	ctx := context.Background()
	store := newTempStore(t)
	for _, name := range []string{"", "  ", "../etc", "a/b", `a\b`} {
		if err := store.Write(ctx, name, []byte("[]")); err == nil {
			t.Fatalf("expected error for name %q", name)
		}
		if _, err := store.Read(ctx, name); err == nil {
			t.Fatalf("expected read error for name %q", name)
		}
	}
}

func TestNewDefaultsAndCreatesRoot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("root not created: %v", err)
	}
	if store.Driver() != core.DriverFilesystem {
		t.Fatalf("unexpected driver %s", store.Driver())
	}
	path, err := store.Path("hotels")
	if err != nil || path != filepath.Join(dir, "hotels.json") {
		t.Fatalf("unexpected path %q err=%v", path, err)
	}
}
