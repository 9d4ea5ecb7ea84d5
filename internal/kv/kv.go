// Package kv holds the durable slots behind the client state: one value per
// key, overwritten on every write.
package kv

import (
	"context"
	"errors"
)

// Store is a last-write-wins key/value slot store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

var ErrNotFound = errors.New("key not found")
