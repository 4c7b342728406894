// Package kv provides the local string-key / JSON-value store every
// piece of persistent state lives in: the session marker, the user
// registry and one financial document per user.
package kv

import "context"

// Store is a flat key-value namespace. Values are opaque strings; the
// callers store JSON.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}
