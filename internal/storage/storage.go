// Package storage defines the key-value persistence port used by the
// shortcut registry, plus in-process implementations of it.
package storage

import "context"

// Store is a minimal key-value port. The registry serializes its entire
// customization mapping into a single value under one fixed key, so the
// port stays deliberately narrow.
type Store interface {
	// Get returns the value for key. The second return is false when the
	// key has never been written.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error
}
