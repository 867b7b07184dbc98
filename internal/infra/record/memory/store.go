// Package memory implements an in-memory record store backend for tests.
package memory

import (
	"context"
	"sync"

	"hotelres/internal/record/core"
)

// Store implements core.Backend backed by process memory.
type Store struct {
	mu       sync.RWMutex
	snaps    map[string][]byte
	writeErr error
	readErr  error
}

// New returns an empty in-memory store.
func New() *Store { return &Store{snaps: make(map[string][]byte)} }

// Driver returns core.DriverMemory.
func (s *Store) Driver() core.Driver { return core.DriverMemory }

// Read returns a copy of the stored snapshot.
func (s *Store) Read(_ context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	data, ok := s.snaps[name]
	readErr := s.readErr
	s.mu.RUnlock()
	if readErr != nil {
		return nil, readErr
	}
	if !ok {
		return nil, core.ErrNotExist
	}
	return cloneBytes(data), nil
}

// Write stores a copy of data under name.
func (s *Store) Write(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.snaps[name] = cloneBytes(data)
	return nil
}

// Set seeds a raw snapshot, bypassing encoding. Tests use it to plant
// malformed content.
func (s *Store) Set(name string, data []byte) {
	s.mu.Lock()
	s.snaps[name] = cloneBytes(data)
	s.mu.Unlock()
}

// FailWrites makes every subsequent Write return err; nil restores writes.
func (s *Store) FailWrites(err error) {
	s.mu.Lock()
	s.writeErr = err
	s.mu.Unlock()
}

// FailReads makes every subsequent Read return err; nil restores reads.
func (s *Store) FailReads(err error) {
	s.mu.Lock()
	s.readErr = err
	s.mu.Unlock()
}

// Raw returns the stored snapshot for name as a copy.
func (s *Store) Raw(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.snaps[name]
	return cloneBytes(data), ok
}

func cloneBytes(in []byte) []byte {
	out := make([]byte, len(in))
	copy(out, in)
	return out
}
