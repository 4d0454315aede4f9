package storage

import (
	"context"
	"errors"
)

// ErrNotFound indicates a key has never been written or was removed.
var ErrNotFound = errors.New("key not found")

// KeyValue is the durable string-keyed backing store. Values are opaque
// serialized documents; each Set replaces the whole value.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
