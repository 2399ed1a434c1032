package storage

import (
	"context"
	"time"

	"github.com/rl1809/storefront/internal/platform/metrics"
	"github.com/rl1809/storefront/internal/port"
)

type instrumentedStore struct {
	next    port.KeyValueStore
	backend string
	metrics *metrics.Metrics
}

// Instrument wraps a store so every call is counted and timed under backend.
func Instrument(next port.KeyValueStore, backend string, m *metrics.Metrics) port.KeyValueStore {
	return &instrumentedStore{next: next, backend: backend, metrics: m}
}

func (s *instrumentedStore) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	data, err := s.next.Get(ctx, key)
	s.metrics.ObserveStoreOp(s.backend, "get", err, start)
	return data, err
}

func (s *instrumentedStore) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value)
	s.metrics.ObserveStoreOp(s.backend, "set", err, start)
	return err
}
