package store

import (
	"context"
	"errors"
)

// Store defines an interface for a durable key-value medium.
//
// Implementations may use different backends (e.g. in‑memory for tests,
// a directory of files, SQLite or Redis).  The contacts store depends
// on this abstraction rather than a concrete medium, so any backend can
// be substituted without changing contact semantics.
//
// All methods accept a context for cancellation and deadlines.
type Store interface {
	// Get returns the value stored under key.  When the key does not
	// exist, found is false and err is nil.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set stores value under key, fully replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Close releases resources held by the backend.
	Close() error
}

var (
	// ErrInvalidKey indicates a key that the backend cannot address.
	ErrInvalidKey = errors.New("store: invalid key")
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store: closed")
)
