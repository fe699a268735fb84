package store

import (
	"context"
	"slices"
	"sync"
)

// InMemoryStore is an implementation of Store backed by a simple
// in‑memory map.  It is safe for concurrent use and intended primarily
// for unit tests and development.  Data stored in this store is not
// persisted beyond the lifetime of the process.
type InMemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
	closed bool
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in‑memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		values: make(map[string][]byte),
	}
}

// Get returns a copy of the value under key so callers cannot mutate
// stored bytes.
func (s *InMemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false, ErrClosed
	}
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

// Set stores a copy of value under key.
func (s *InMemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if key == "" {
		return ErrInvalidKey
	}
	s.values[key] = slices.Clone(value)
	return nil
}

// Close marks the store closed.  Subsequent calls fail with ErrClosed.
func (s *InMemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
