package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok, err := store.Get(ctx, "catalog")
	require.NoError(t, err)
	assert.False(t, ok)

	value := []byte(`{"coupons":[]}`)
	require.NoError(t, store.Set(ctx, "catalog", value, 0))
	value[0] = 'x'

	got, ok, err := store.Get(ctx, "catalog")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"coupons":[]}`, string(got))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 10, 10, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "catalog", []byte("v1"), time.Minute))

	_, ok, _ := store.Get(ctx, "catalog")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok, _ = store.Get(ctx, "catalog")
	assert.False(t, ok)
}

func TestRedisStoreKeyPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	store := NewRedisStoreFromClient(client)
	assert.Equal(t, "cart-pricing:catalog", store.Key("catalog"))
}

func TestNewRedisStoreRequiresAddress(t *testing.T) {
	_, err := NewRedisStore(context.Background(), RedisConfig{})
	assert.Error(t, err)
}
