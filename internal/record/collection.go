// Package record turns a byte-level Backend into typed collections of flat
// records, and selects a backend from configuration.
package record

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hotelres/internal/record/core"
)

// ErrNotAList is reported when a stored snapshot is valid JSON but its top
// level is not an array.
var ErrNotAList = errors.New("corrupted collection, expected a list")

// Logger receives the diagnostics of degraded loads and breaker transitions.
type Logger interface {
	Warn(msg string, kv ...any)
}

type noopLogger struct{}

func (noopLogger) Warn(string, ...any) {}

// Collection is an ordered list of records of type T persisted as a single
// snapshot. Every Load re-reads the full snapshot and every Save rewrites it;
// there is no optimistic concurrency check, so concurrent writers can lose
// updates.
type Collection[T any] struct {
	name    string
	backend core.Backend
	logger  Logger
}

// NewCollection binds the named collection of backend. A nil logger discards
// diagnostics.
func NewCollection[T any](backend core.Backend, name string, logger Logger) *Collection[T] {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Collection[T]{name: name, backend: backend, logger: logger}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.name }

// Load returns the stored records. A missing snapshot is an empty collection;
// an unreadable, malformed or non-list snapshot is also an empty collection,
// reported through the logger. Load never fails.
func (c *Collection[T]) Load(ctx context.Context) []T {
	data, err := c.backend.Read(ctx, c.name)
	if errors.Is(err, core.ErrNotExist) {
		return []T{}
	}
	if err != nil {
		c.logger.Warn("error loading collection", "collection", c.name, "driver", c.backend.Driver(), "error", err)
		return []T{}
	}
	records, err := Decode[T](data)
	if err != nil {
		c.logger.Warn("error loading collection", "collection", c.name, "driver", c.backend.Driver(), "error", err)
		return []T{}
	}
	return records
}

// Save overwrites the stored snapshot with records. Failures are returned to
// the caller, which owns reporting them; records are left as they are.
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	data, err := Encode(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	if err := c.backend.Write(ctx, c.name, data); err != nil {
		return fmt.Errorf("write %s via %s: %w", c.name, c.backend.Driver(), err)
	}
	return nil
}

// Decode parses a snapshot into records. The top level must be a JSON array.
func Decode[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("decode: empty snapshot")
	}
	if trimmed[0] != '[' {
		return nil, ErrNotAList
	}
	records := []T{}
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return records, nil
}

// Encode renders records as a pretty-printed JSON array with four-space
// indentation. A nil slice encodes as an empty array.
func Encode[T any](records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}
	return json.MarshalIndent(records, "", "    ")
}
