package store

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	redis "github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

// RedisStore is an implementation of Store backed by Redis string keys.
// Each key holds one opaque value; Set replaces the whole value with a
// single SET, so readers never observe a partial write.
type RedisStore struct {
	client *redis.Client
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to a Redis instance at the provided address and
// database.  A ping is performed to verify connectivity.
func NewRedisStore(ctx context.Context, addr, password string, db int, tls *tls.Config) (*RedisStore, error) {
	opts := &redis.Options{
		Addr:     addr,
		Password: password, // empty string means no auth
		DB:       db,
		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	}
	if tls != nil {
		opts.TLSConfig = tls
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Get reads key from Redis.  A missing key yields (nil, false, nil).
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}
	return value, true, nil
}

// Set writes value to key without expiry.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrInvalidKey
	}
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Close closes the underlying client connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
