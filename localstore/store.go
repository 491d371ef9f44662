// Package localstore is the device-local persistence layer: a small
// key-value store holding whole serialized records under well-known keys,
// overwritten wholesale on every write. It stands in for the browser's
// localStorage in the original storefront.
package localstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written or has
// been deleted
var ErrNotFound = errors.New("localstore: key not found")

// Store is a key-value store for small serialized records
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
