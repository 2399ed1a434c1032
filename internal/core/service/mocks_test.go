package service

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/rl1809/storefront/internal/core/domain"
)

var errStoreDown = errors.New("store down")

// Mock CollectionRepository
type mockRepo[T any] struct {
	mu      sync.Mutex
	items   []T
	saves   int
	failing bool
}

func newMockRepo[T any](items ...T) *mockRepo[T] {
	return &mockRepo[T]{items: items}
}

func (m *mockRepo[T]) Load(ctx context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return nil, errStoreDown
	}
	return slices.Clone(m.items), nil
}

func (m *mockRepo[T]) Save(ctx context.Context, items []T) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return errStoreDown
	}
	m.items = slices.Clone(items)
	m.saves++
	return nil
}

func (m *mockRepo[T]) setFailing(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failing = v
}

func (m *mockRepo[T]) snapshot() ([]T, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.items), m.saves
}

// Mock ProductFinder
type finderFunc func(id domain.ID) (domain.Product, bool)

func (f finderFunc) FindProduct(id domain.ID) (domain.Product, bool) {
	return f(id)
}
