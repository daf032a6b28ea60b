// Package store persists serialized boards under opaque identifiers.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("store: key not found")

// Store is a byte-oriented key-value store. Implementations are safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
