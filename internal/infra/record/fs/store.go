// Package fs implements a record store backend on the local filesystem.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"hotelres/internal/record/core"
)

// Store keeps each collection in <root>/<name>.json. Writes go through a
// temporary file in the same directory followed by a rename, so a reader sees
// either the previous snapshot or the new one. It is not safe for concurrent
// writers of the same collection.
type Store struct {
	root string
}

// New returns a filesystem-backed store rooted at root, creating it if needed.
func New(root string) (*Store, error) {
	if root == "" {
		root = "./data"
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{root: root}, nil
}

// Driver returns core.DriverFilesystem.
func (s *Store) Driver() core.Driver { return core.DriverFilesystem }

// Root returns the directory holding the collection files.
func (s *Store) Root() string { return s.root }

// Path returns the file backing the named collection.
func (s *Store) Path(name string) (string, error) {
	clean, err := sanitizeName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, clean+".json"), nil
}

// sanitizeName keeps collection names inside root.
func sanitizeName(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("empty collection name")
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid collection name %q", name)
	}
	return name, nil
}

// Read returns the file contents or core.ErrNotExist when the file is absent.
func (s *Store) Read(_ context.Context, name string) ([]byte, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	// #nosec G304 -- path is confined to root by sanitizeName
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, core.ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write atomically replaces the collection file.
func (s *Store) Write(_ context.Context, name string, data []byte) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+name+"-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
