package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/core/service"
	"github.com/rl1809/storefront/internal/platform/metrics"
)

type GRPCHandler struct {
	catalog *service.CatalogService
	cart    *service.CartService
}

func NewGRPCHandler(catalog *service.CatalogService, cart *service.CartService) *GRPCHandler {
	return &GRPCHandler{catalog: catalog, cart: cart}
}

func (h *GRPCHandler) ListProducts(ctx context.Context, req *ListProductsRequest) (*ListProductsResponse, error) {
	return &ListProductsResponse{Products: h.catalog.List()}, nil
}

func (h *GRPCHandler) CreateProduct(ctx context.Context, req *CreateProductRequest) (*ProductResponse, error) {
	product, err := h.catalog.Create(ctx, domain.ProductDraft{
		Name:  req.Name,
		Brand: req.Brand,
		Price: req.Price,
		Link:  req.Link,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &ProductResponse{Product: product, Message: msgProductAdded}, nil
}

func (h *GRPCHandler) UpdateProduct(ctx context.Context, req *UpdateProductRequest) (*ProductResponse, error) {
	product, err := h.catalog.Update(ctx, req.ID, domain.ProductPatch{
		Name:  req.Name,
		Brand: req.Brand,
		Price: req.Price,
		Link:  req.Link,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &ProductResponse{Product: product, Message: msgProductUpdated}, nil
}

func (h *GRPCHandler) DeleteProduct(ctx context.Context, req *DeleteProductRequest) (*ListProductsResponse, error) {
	products, err := h.catalog.Delete(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ListProductsResponse{Products: products}, nil
}

func (h *GRPCHandler) AddToCart(ctx context.Context, req *AddToCartRequest) (*AddToCartResponse, error) {
	quantity := int(req.Quantity)
	line, err := h.cart.AddToCart(ctx, req.ProductID, quantity, h.catalog)
	if err != nil {
		return nil, toStatus(err)
	}
	return &AddToCartResponse{
		Line:    line,
		Total:   h.cart.LineTotal(line),
		Message: addedToCartMessage(quantity),
	}, nil
}

// SelectQuantity sets the pending quantity used by Buy. Zero selects the default.
func (h *GRPCHandler) SelectQuantity(ctx context.Context, req *SelectQuantityRequest) (*SelectQuantityResponse, error) {
	h.cart.SelectQuantity(req.ProductID, int(req.Quantity))
	return &SelectQuantityResponse{
		ProductID: req.ProductID,
		Quantity:  int32(h.cart.SelectedQuantity(req.ProductID)),
	}, nil
}

func (h *GRPCHandler) Buy(ctx context.Context, req *BuyRequest) (*AddToCartResponse, error) {
	line, quantity, err := h.cart.Buy(ctx, req.ProductID, h.catalog)
	if err != nil {
		return nil, toStatus(err)
	}
	return &AddToCartResponse{
		Line:    line,
		Total:   h.cart.LineTotal(line),
		Message: addedToCartMessage(quantity),
	}, nil
}

func (h *GRPCHandler) RemoveFromCart(ctx context.Context, req *RemoveFromCartRequest) (*CartResponse, error) {
	lines, err := h.cart.Delete(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &CartResponse{Items: lines, Total: h.cart.Total()}, nil
}

func (h *GRPCHandler) GetCart(ctx context.Context, req *GetCartRequest) (*CartResponse, error) {
	return &CartResponse{Items: h.cart.List(), Total: h.cart.Total()}, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return status.Error(codes.InvalidArgument, userMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, userMessage(err))
	default:
		return status.Error(codes.Internal, msgInternal)
	}
}

// UnaryServerInterceptor records request metrics and logs failed calls.
// m may be nil.
func UnaryServerInterceptor(m *metrics.Metrics, logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		if code == codes.Internal || code == codes.Unknown {
			logger.Error("rpc failed", "method", info.FullMethod, "error", err)
		}
		if m != nil {
			m.ObserveRequest("grpc", info.FullMethod, code.String(), start)
		}
		return resp, err
	}
}
