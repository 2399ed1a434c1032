package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/port"
)

// CatalogService owns the product collection. Every mutation is persisted
// before it becomes the current state, so a failed write changes nothing.
type CatalogService struct {
	repo   port.ProductRepository
	logger *slog.Logger
	newID  func() domain.ID

	mu    sync.RWMutex
	state domain.Catalog
}

func NewCatalogService(ctx context.Context, repo port.ProductRepository, logger *slog.Logger) (*CatalogService, error) {
	products, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	return &CatalogService{
		repo:   repo,
		logger: logger,
		newID:  func() domain.ID { return domain.ID(uuid.NewString()) },
		state:  domain.NewCatalog(products),
	}, nil
}

func (s *CatalogService) Create(ctx context.Context, draft domain.ProductDraft) (domain.Product, error) {
	price, err := validateDraft(draft)
	if err != nil {
		return domain.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product := domain.Product{
		ID:    s.freshID(),
		Name:  draft.Name,
		Brand: draft.Brand,
		Price: price,
		Link:  draft.Link,
	}

	if err := s.commit(ctx, s.state.Append(product)); err != nil {
		return domain.Product{}, err
	}

	s.logger.Info("product created", "id", product.ID, "name", product.Name)
	return product, nil
}

func (s *CatalogService) Update(ctx context.Context, id domain.ID, patch domain.ProductPatch) (domain.Product, error) {
	price, err := validatePatch(patch)
	if err != nil {
		return domain.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.state.Find(id)
	if !ok {
		return domain.Product{}, domain.NewNotFoundError("product", id)
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Brand != nil {
		product.Brand = *patch.Brand
	}
	if price != nil {
		product.Price = *price
	}
	if patch.Link != nil {
		product.Link = *patch.Link
	}

	next, _ := s.state.Replace(product)
	if err := s.commit(ctx, next); err != nil {
		return domain.Product{}, err
	}

	s.logger.Info("product updated", "id", product.ID)
	return product, nil
}

// Delete removes the product with id. An unknown id is not an error and
// does not touch the store.
func (s *CatalogService) Delete(ctx context.Context, id domain.ID) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, removed := s.state.Remove(id)
	if !removed {
		return s.state.Products(), nil
	}

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	s.logger.Info("product deleted", "id", id)
	return next.Products(), nil
}

func (s *CatalogService) List() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Products()
}

func (s *CatalogService) FindProduct(id domain.ID) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Find(id)
}

func (s *CatalogService) commit(ctx context.Context, next domain.Catalog) error {
	if err := s.repo.Save(ctx, next.Products()); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	s.state = next
	return nil
}

// freshID draws ids until one is unused in the current catalog.
func (s *CatalogService) freshID() domain.ID {
	for {
		id := s.newID()
		if _, taken := s.state.Find(id); !taken {
			return id
		}
	}
}
