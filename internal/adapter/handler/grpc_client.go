package handler

import (
	"context"

	"google.golang.org/grpc"
)

// StorefrontClient calls the storefront service over a connection using the
// JSON codec.
type StorefrontClient struct {
	conn grpc.ClientConnInterface
}

func NewStorefrontClient(conn grpc.ClientConnInterface) *StorefrontClient {
	return &StorefrontClient{conn: conn}
}

func invoke[Resp any](ctx context.Context, conn grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := conn.Invoke(ctx, "/"+serviceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *StorefrontClient) ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error) {
	return invoke[ListProductsResponse](ctx, c.conn, "ListProducts", in, opts)
}

func (c *StorefrontClient) CreateProduct(ctx context.Context, in *CreateProductRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	return invoke[ProductResponse](ctx, c.conn, "CreateProduct", in, opts)
}

func (c *StorefrontClient) UpdateProduct(ctx context.Context, in *UpdateProductRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	return invoke[ProductResponse](ctx, c.conn, "UpdateProduct", in, opts)
}

func (c *StorefrontClient) DeleteProduct(ctx context.Context, in *DeleteProductRequest, opts ...grpc.CallOption) (*ListProductsResponse, error) {
	return invoke[ListProductsResponse](ctx, c.conn, "DeleteProduct", in, opts)
}

func (c *StorefrontClient) AddToCart(ctx context.Context, in *AddToCartRequest, opts ...grpc.CallOption) (*AddToCartResponse, error) {
	return invoke[AddToCartResponse](ctx, c.conn, "AddToCart", in, opts)
}

func (c *StorefrontClient) SelectQuantity(ctx context.Context, in *SelectQuantityRequest, opts ...grpc.CallOption) (*SelectQuantityResponse, error) {
	return invoke[SelectQuantityResponse](ctx, c.conn, "SelectQuantity", in, opts)
}

func (c *StorefrontClient) Buy(ctx context.Context, in *BuyRequest, opts ...grpc.CallOption) (*AddToCartResponse, error) {
	return invoke[AddToCartResponse](ctx, c.conn, "Buy", in, opts)
}

func (c *StorefrontClient) RemoveFromCart(ctx context.Context, in *RemoveFromCartRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	return invoke[CartResponse](ctx, c.conn, "RemoveFromCart", in, opts)
}

func (c *StorefrontClient) GetCart(ctx context.Context, in *GetCartRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	return invoke[CartResponse](ctx, c.conn, "GetCart", in, opts)
}
