package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/rl1809/storefront/internal/platform/metrics"
)

func TestInstrument_CountsCalls(t *testing.T) {
	m := metrics.New()
	ctx := context.Background()

	store := Instrument(NewMemoryAdapter(), "memory", m)
	_ = store.Set(ctx, "k", []byte(`[]`))
	_, _ = store.Get(ctx, "k")
	_, _ = store.Get(ctx, "k")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOpsTotal.WithLabelValues("memory", "set", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.StoreOpsTotal.WithLabelValues("memory", "get", "ok")))

	failing := Instrument(failingStore{err: errors.New("down")}, "redis", m)
	_, err := failing.Get(ctx, "k")
	assert.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOpsTotal.WithLabelValues("redis", "get", "error")))
}
