package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, prefix string) (*RedisAdapter, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisAdapter(client, prefix), mr
}

func TestRedisGet_Missing(t *testing.T) {
	adapter, _ := setupTestRedis(t, "")

	data, err := adapter.Get(context.Background(), ProductsKey)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestRedisSetGet(t *testing.T) {
	adapter, mr := setupTestRedis(t, "")
	ctx := context.Background()

	err := adapter.Set(ctx, ProductsKey, []byte(`[{"id":"a"}]`))
	require.NoError(t, err)

	stored, err := mr.Get("products")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, stored)
	assert.Equal(t, 0, int(mr.TTL("products")))

	data, err := adapter.Get(ctx, ProductsKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(data))
}

func TestRedisSet_Overwrites(t *testing.T) {
	adapter, _ := setupTestRedis(t, "")
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, CartItemsKey, []byte(`[1]`)))
	require.NoError(t, adapter.Set(ctx, CartItemsKey, []byte(`[]`)))

	data, err := adapter.Get(ctx, CartItemsKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestRedisPrefix(t *testing.T) {
	adapter, mr := setupTestRedis(t, "shop:")

	require.NoError(t, adapter.Set(context.Background(), CartItemsKey, []byte(`[]`)))

	assert.True(t, mr.Exists("shop:cartItems"))
	assert.False(t, mr.Exists("cartItems"))
}

func TestRedis_ConnectionError(t *testing.T) {
	adapter, mr := setupTestRedis(t, "")
	mr.Close()

	_, err := adapter.Get(context.Background(), ProductsKey)
	assert.ErrorContains(t, err, "redis get products")

	err = adapter.Set(context.Background(), ProductsKey, []byte(`[]`))
	assert.ErrorContains(t, err, "redis set products")
}
