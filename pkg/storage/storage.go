// Package storage abstracts the key-value slot the cart persists into.
package storage

import (
	"context"
	"errors"
)

// Storage reads and writes opaque values by key.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ErrNotFound indicates the requested key has no value.
var ErrNotFound = errors.New("key not found")
