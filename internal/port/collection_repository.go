package port

import (
	"context"

	"github.com/rl1809/storefront/internal/core/domain"
)

type CollectionRepository[T any] interface {
	// Load returns the stored sequence, empty when absent or unparseable
	Load(ctx context.Context) ([]T, error)

	// Save replaces the stored sequence
	Save(ctx context.Context, items []T) error
}

type ProductRepository = CollectionRepository[domain.Product]

type CartRepository = CollectionRepository[domain.CartLine]

type ProductFinder interface {
	// FindProduct looks a product up in the current catalog
	FindProduct(id domain.ID) (domain.Product, bool)
}
