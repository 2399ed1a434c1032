package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rl1809/storefront/internal/port"
)

const (
	ProductsKey  = "products"
	CartItemsKey = "cartItems"
)

// JSONCollection stores a whole sequence of records as one JSON array under
// a single key. It does not look at record shape beyond decoding.
type JSONCollection[T any] struct {
	store  port.KeyValueStore
	key    string
	logger *slog.Logger
}

func NewJSONCollection[T any](store port.KeyValueStore, key string, logger *slog.Logger) *JSONCollection[T] {
	return &JSONCollection[T]{
		store:  store,
		key:    key,
		logger: logger.With("collection", key),
	}
}

// Load returns an empty slice when the key is absent or holds text that is
// not a JSON array of T. Only store failures are returned as errors.
func (c *JSONCollection[T]) Load(ctx context.Context) ([]T, error) {
	data, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}
	if len(data) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		c.logger.Warn("discarding unparseable collection", "error", err, "bytes", len(data))
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *JSONCollection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}
