package handler

import (
	"context"

	"google.golang.org/grpc"

	"github.com/rl1809/storefront/internal/core/domain"
)

const serviceName = "storefront.v1.Storefront"

type ListProductsRequest struct{}

type ListProductsResponse struct {
	Products []domain.Product `json:"products"`
}

type CreateProductRequest struct {
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Price string `json:"price"`
	Link  string `json:"link"`
}

type UpdateProductRequest struct {
	ID    domain.ID `json:"id"`
	Name  *string   `json:"name,omitempty"`
	Brand *string   `json:"brand,omitempty"`
	Price *string   `json:"price,omitempty"`
	Link  *string   `json:"link,omitempty"`
}

type ProductResponse struct {
	Product domain.Product `json:"product"`
	Message string         `json:"message,omitempty"`
}

type DeleteProductRequest struct {
	ID domain.ID `json:"id"`
}

type AddToCartRequest struct {
	ProductID domain.ID `json:"product_id"`
	Quantity  int32     `json:"quantity"`
}

type AddToCartResponse struct {
	Line    domain.CartLine `json:"line"`
	Total   float64         `json:"total"`
	Message string          `json:"message"`
}

type SelectQuantityRequest struct {
	ProductID domain.ID `json:"product_id"`
	Quantity  int32     `json:"quantity"`
}

type SelectQuantityResponse struct {
	ProductID domain.ID `json:"product_id"`
	Quantity  int32     `json:"quantity"`
}

type BuyRequest struct {
	ProductID domain.ID `json:"product_id"`
}

type RemoveFromCartRequest struct {
	ID domain.ID `json:"id"`
}

type GetCartRequest struct{}

type CartResponse struct {
	Items []domain.CartLine `json:"items"`
	Total float64           `json:"total"`
}

type StorefrontServer interface {
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
	CreateProduct(context.Context, *CreateProductRequest) (*ProductResponse, error)
	UpdateProduct(context.Context, *UpdateProductRequest) (*ProductResponse, error)
	DeleteProduct(context.Context, *DeleteProductRequest) (*ListProductsResponse, error)
	AddToCart(context.Context, *AddToCartRequest) (*AddToCartResponse, error)
	SelectQuantity(context.Context, *SelectQuantityRequest) (*SelectQuantityResponse, error)
	Buy(context.Context, *BuyRequest) (*AddToCartResponse, error)
	RemoveFromCart(context.Context, *RemoveFromCartRequest) (*CartResponse, error)
	GetCart(context.Context, *GetCartRequest) (*CartResponse, error)
}

func RegisterStorefrontServer(s grpc.ServiceRegistrar, srv StorefrontServer) {
	s.RegisterService(&storefrontServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](method string, call func(StorefrontServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(StorefrontServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + serviceName + "/" + method,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(StorefrontServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var storefrontServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*StorefrontServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("ListProducts", StorefrontServer.ListProducts),
		unaryHandler("CreateProduct", StorefrontServer.CreateProduct),
		unaryHandler("UpdateProduct", StorefrontServer.UpdateProduct),
		unaryHandler("DeleteProduct", StorefrontServer.DeleteProduct),
		unaryHandler("AddToCart", StorefrontServer.AddToCart),
		unaryHandler("SelectQuantity", StorefrontServer.SelectQuantity),
		unaryHandler("Buy", StorefrontServer.Buy),
		unaryHandler("RemoveFromCart", StorefrontServer.RemoveFromCart),
		unaryHandler("GetCart", StorefrontServer.GetCart),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/v1/storefront.proto",
}
