// Package redisstore implements storage.Storage on Redis.
package redisstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"storefront/pkg/storage"
)

// Storage persists values in Redis. Values have no expiry; the slot
// survives across sessions.
type Storage struct {
	client *redis.Client
}

// New creates a Redis-backed storage.
func New(client *redis.Client) *Storage {
	return &Storage{client: client}
}

// Get retrieves the value stored under key.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	return v, err
}

// Set stores value under key.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// Delete removes the value stored under key.
func (s *Storage) Delete(ctx context.Context, key string) error {
	n, err := s.client.Del(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
