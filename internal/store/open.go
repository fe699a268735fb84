package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/afoley587/coding-challenges-2025/contacts-golang/internal/config"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("store: unknown backend")

// Open constructs the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.Storage) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewInMemoryStore(), nil
	case config.BackendFile:
		return NewFileStore(cfg.File.Dir), nil
	case config.BackendSQLite:
		return NewSQLiteStore(ctx, cfg.SQLite.Path)
	case config.BackendRedis:
		return NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, nil)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
