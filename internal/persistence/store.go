package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "github.com/spec-kit/eventhub/pkg/util/errorutil"
)

// Store is a durable string key/value namespace. Every record the service
// keeps, session flags included, lives behind this interface.
type Store interface {
	// Get returns the raw value and false when the key was never written.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set creates or overwrites key.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// GetJSON reads key and decodes it into a T. Absent keys and values that do
// not parse yield def; only backend failures are returned as errors.
func GetJSON[T any](ctx context.Context, s Store, key string, def T) (T, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return def, nil
	}
	return out, nil
}

// SetJSON encodes v and writes it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(raw))
}

func unavailable(op, key string, err error) error {
	return fmt.Errorf("%w: %s %q: %v", apperrors.ErrStorageUnavailable, op, key, err)
}

type namespacedStore struct {
	inner  Store
	prefix string
}

// Namespaced scopes every key of s under prefix. Namespaces nest, so
// Namespaced(Namespaced(s, "a"), "b") writes "a:b:<key>".
func Namespaced(s Store, prefix string) Store {
	if prefix == "" {
		return s
	}
	return &namespacedStore{inner: s, prefix: prefix + ":"}
}

func (n *namespacedStore) Get(ctx context.Context, key string) (string, bool, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *namespacedStore) Set(ctx context.Context, key, value string) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n *namespacedStore) Remove(ctx context.Context, key string) error {
	return n.inner.Remove(ctx, n.prefix+key)
}

func (n *namespacedStore) Ping(ctx context.Context) error {
	return n.inner.Ping(ctx)
}
