// Package storage provides the durable local key/value store that backs
// the cart and the mock backend. Values are JSON-serialized under fixed
// keys, mirroring browser localStorage semantics: process-local, no
// schema versioning, last write wins.
package storage

import (
	"context"
	"errors"
)

// Fixed storage keys.
const (
	KeyCart        = "cart"
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
	KeyOrders      = "orders"
)

// ErrNotFound is returned by Get when no value exists under the key.
var ErrNotFound = errors.New("storage: key not found")

// Store is a JSON key/value store. Get decodes the stored value into
// out and returns ErrNotFound for absent keys; a value that fails to
// decode returns a non-nil error and callers degrade to their empty
// state. Set replaces the value under key wholesale.
type Store interface {
	Get(ctx context.Context, key string, out interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}
