package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/port"
)

// CartService owns the cart-line collection and the pending quantity each
// product will be bought with. Pending quantities are not persisted.
type CartService struct {
	repo   port.CartRepository
	logger *slog.Logger

	mu        sync.Mutex
	state     domain.Cart
	selection domain.QuantitySelection
}

func NewCartService(ctx context.Context, repo port.CartRepository, logger *slog.Logger) (*CartService, error) {
	lines, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	return &CartService{
		repo:      repo,
		logger:    logger,
		state:     domain.NewCart(lines),
		selection: domain.QuantitySelection{},
	}, nil
}

// AddToCart puts quantity units of the product into the cart, merging into
// an existing line for the same product.
func (s *CartService) AddToCart(ctx context.Context, productID domain.ID, quantity int, products port.ProductFinder) (domain.CartLine, error) {
	if err := domain.ValidateQuantity(quantity); err != nil {
		return domain.CartLine{}, err
	}

	product, ok := products.FindProduct(productID)
	if !ok {
		return domain.CartLine{}, domain.NewNotFoundError("product", productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, line, err := s.state.Add(product, quantity)
	if err != nil {
		return domain.CartLine{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return domain.CartLine{}, err
	}

	s.logger.Info("added to cart", "id", productID, "quantity", quantity, "line_quantity", line.Quantity)
	return line, nil
}

// Buy adds the product with its pending quantity and clears the selection
// on success.
func (s *CartService) Buy(ctx context.Context, productID domain.ID, products port.ProductFinder) (domain.CartLine, int, error) {
	quantity := s.SelectedQuantity(productID)

	line, err := s.AddToCart(ctx, productID, quantity, products)
	if err != nil {
		return domain.CartLine{}, quantity, err
	}

	s.mu.Lock()
	s.selection.Reset(productID)
	s.mu.Unlock()

	return line, quantity, nil
}

func (s *CartService) SelectQuantity(productID domain.ID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Set(productID, quantity)
}

func (s *CartService) SelectedQuantity(productID domain.ID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Quantity(productID)
}

// Delete removes the line for id; an unknown id is a no-op.
func (s *CartService) Delete(ctx context.Context, id domain.ID) ([]domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, removed := s.state.Remove(id)
	if !removed {
		return s.state.Lines(), nil
	}

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	s.logger.Info("removed from cart", "id", id)
	return next.Lines(), nil
}

func (s *CartService) List() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Lines()
}

func (s *CartService) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Total()
}

func (s *CartService) LineTotal(line domain.CartLine) float64 {
	return line.Total()
}

func (s *CartService) commit(ctx context.Context, next domain.Cart) error {
	if err := s.repo.Save(ctx, next.Lines()); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	s.state = next
	return nil
}
