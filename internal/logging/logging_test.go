package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestJSONLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Warn("operation failed", "operation", "hotel.create", "error", errors.New("boom"), "dangling")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if entry["msg"] != "operation failed" || entry["level"] != "warning" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if entry["operation"] != "hotel.create" || entry["error"] != "boom" || entry["dangling"] != "(MISSING)" {
		t.Fatalf("unexpected fields %v", entry)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Debug("hidden")
	l.Info("hidden")
	l.Error("shown", "k", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestInvalidConfig(t *testing.T) {
	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Fatalf("expected level error")
	}
	if _, err := New(Config{Format: "xml"}); err == nil {
		t.Fatalf("expected format error")
	}
}

func TestFileOutputUsesRotator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotelres.log")
	l, err := New(Config{File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Info("to file", "hotel_id", "H1")
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "to file") || !strings.Contains(string(data), "hotel_id=H1") {
		t.Fatalf("unexpected file contents %q", data)
	}
}
