package handler

import (
	"context"
	"net"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/rl1809/storefront/internal/adapter/storage"
	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/platform/logger"
	"github.com/rl1809/storefront/internal/platform/metrics"
	"github.com/rl1809/storefront/internal/port"
)

func setupGRPC(t *testing.T, store port.KeyValueStore) (*StorefrontClient, *metrics.Metrics) {
	t.Helper()
	catalog, cart := newServices(t, store)
	m := metrics.New()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(UnaryServerInterceptor(m, logger.Discard())))
	RegisterStorefrontServer(srv, NewGRPCHandler(catalog, cart))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewStorefrontClient(conn), m
}

func TestGRPC_ShoeScenario(t *testing.T) {
	client, _ := setupGRPC(t, storage.NewMemoryAdapter())
	ctx := context.Background()

	created, err := client.CreateProduct(ctx, &CreateProductRequest{
		Name: "Shoe", Brand: "Acme", Price: "49.99", Link: "http://x/img.png",
	})
	require.NoError(t, err)
	assert.Equal(t, msgProductAdded, created.Message)

	added, err := client.AddToCart(ctx, &AddToCartRequest{ProductID: created.Product.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, domain.CartLine{ID: created.Product.ID, Name: "Shoe", Price: 49.99, Quantity: 2}, added.Line)
	assert.Equal(t, 99.98, added.Total)
	assert.Equal(t, "2 items added to the cart.", added.Message)

	cart, err := client.GetCart(ctx, &GetCartRequest{})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 99.98, cart.Total)

	list, err := client.ListProducts(ctx, &ListProductsRequest{})
	require.NoError(t, err)
	assert.Equal(t, []domain.Product{created.Product}, list.Products)
}

func TestGRPC_UpdateAndDelete(t *testing.T) {
	client, _ := setupGRPC(t, storage.NewMemoryAdapter())
	ctx := context.Background()

	created, err := client.CreateProduct(ctx, &CreateProductRequest{
		Name: "Shoe", Brand: "Acme", Price: "49.99", Link: "http://x/img.png",
	})
	require.NoError(t, err)

	name := "Boot"
	updated, err := client.UpdateProduct(ctx, &UpdateProductRequest{ID: created.Product.ID, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Boot", updated.Product.Name)
	assert.Equal(t, 49.99, updated.Product.Price)

	remaining, err := client.DeleteProduct(ctx, &DeleteProductRequest{ID: created.Product.ID})
	require.NoError(t, err)
	assert.Empty(t, remaining.Products)
}

func TestGRPC_StatusCodes(t *testing.T) {
	client, m := setupGRPC(t, storage.NewMemoryAdapter())
	ctx := context.Background()

	_, err := client.CreateProduct(ctx, &CreateProductRequest{Name: "Shoe", Price: "1"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, msgFillAllFields, status.Convert(err).Message())

	_, err = client.AddToCart(ctx, &AddToCartRequest{ProductID: "missing", Quantity: 1})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.UpdateProduct(ctx, &UpdateProductRequest{ID: "missing"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.AddToCart(ctx, &AddToCartRequest{ProductID: "missing", Quantity: 0})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, msgQuantityError, status.Convert(err).Message())

	method := "/" + serviceName + "/AddToCart"
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("grpc", method, codes.NotFound.String())))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("grpc", method, codes.InvalidArgument.String())))
}

func TestGRPC_StoreFailureIsInternal(t *testing.T) {
	client, _ := setupGRPC(t, brokenStore{KeyValueStore: storage.NewMemoryAdapter()})

	_, err := client.CreateProduct(context.Background(), &CreateProductRequest{
		Name: "Shoe", Brand: "Acme", Price: "49.99", Link: "http://x",
	})
	assert.Equal(t, codes.Internal, status.Code(err))

	cart, err := client.RemoveFromCart(context.Background(), &RemoveFromCartRequest{ID: "nothing"})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestGRPC_SelectQuantityThenBuy(t *testing.T) {
	client, _ := setupGRPC(t, storage.NewMemoryAdapter())
	ctx := context.Background()

	created, err := client.CreateProduct(ctx, &CreateProductRequest{
		Name: "Shoe", Brand: "Acme", Price: "49.99", Link: "http://x/img.png",
	})
	require.NoError(t, err)
	id := created.Product.ID

	selected, err := client.SelectQuantity(ctx, &SelectQuantityRequest{ProductID: id, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, int32(2), selected.Quantity)

	bought, err := client.Buy(ctx, &BuyRequest{ProductID: id})
	require.NoError(t, err)
	assert.Equal(t, 2, bought.Line.Quantity)
	assert.Equal(t, 99.98, bought.Total)
	assert.Equal(t, "2 items added to the cart.", bought.Message)

	// selection resets after a purchase
	bought, err = client.Buy(ctx, &BuyRequest{ProductID: id})
	require.NoError(t, err)
	assert.Equal(t, 3, bought.Line.Quantity)
	assert.Equal(t, "1 item added to the cart.", bought.Message)
}

func TestGRPC_BuyErrors(t *testing.T) {
	client, _ := setupGRPC(t, storage.NewMemoryAdapter())
	ctx := context.Background()

	_, err := client.Buy(ctx, &BuyRequest{ProductID: "missing"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	created, err := client.CreateProduct(ctx, &CreateProductRequest{
		Name: "Shoe", Brand: "Acme", Price: "49.99", Link: "http://x/img.png",
	})
	require.NoError(t, err)

	_, err = client.SelectQuantity(ctx, &SelectQuantityRequest{ProductID: created.Product.ID, Quantity: -1})
	require.NoError(t, err)

	_, err = client.Buy(ctx, &BuyRequest{ProductID: created.Product.ID})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, msgQuantityError, status.Convert(err).Message())
}
