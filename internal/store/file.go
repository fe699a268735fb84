package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore is an implementation of Store that keeps each key in its
// own <key>.json file under a base directory.  Writes go to a temporary
// file that is renamed over the target, so a crash mid-write leaves the
// previous value intact.
type FileStore struct {
	baseDir string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore rooted at baseDir.  The directory is
// created on the first Set.
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

// Get reads the file for key.  A missing file yields (nil, false, nil).
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("file: reading %s: %w", p, err)
	}
	return data, true, nil
}

// Set atomically replaces the file for key with value.
func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("file: creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.baseDir, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("file: creating temp file: %w", err)
	}
	// Remove is a no-op once the rename has succeeded.
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("file: writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file: closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("file: renaming to %s: %w", p, err)
	}
	return nil
}

// Close is a no-op; FileStore holds no open handles between calls.
func (s *FileStore) Close() error { return nil }

// path returns the filesystem path for a key.
// It rejects keys that are empty, dot-segments, or contain path separators.
func (s *FileStore) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || key != filepath.Base(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.baseDir, key+".json"), nil
}
