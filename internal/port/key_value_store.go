package port

import "context"

type KeyValueStore interface {
	// Get returns the stored value, or nil with no error when the key is absent
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the whole value stored under key
	Set(ctx context.Context, key string, value []byte) error
}
