package storage

import (
	"context"
	"time"

	"github.com/rl1809/storefront/internal/port"
)

type timeoutStore struct {
	next    port.KeyValueStore
	timeout time.Duration
}

// WithTimeout bounds every call to next by d. A zero d returns next as is.
func WithTimeout(next port.KeyValueStore, d time.Duration) port.KeyValueStore {
	if d <= 0 {
		return next
	}
	return &timeoutStore{next: next, timeout: d}
}

func (s *timeoutStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.Get(ctx, key)
}

func (s *timeoutStore) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.Set(ctx, key, value)
}
