package cart

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/antojo-app/backend/pkg/config"
)

type fakeRedis struct {
	values map[string]string
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.values[key] = value.(string)
	return nil
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeRedis) CartKey(namespace, userID string) string {
	return "antojo:" + namespace + ":" + userID
}

func TestRedisStorageRoundTrip(t *testing.T) {
	fake := &fakeRedis{values: map[string]string{}}
	storage := &RedisStorage{client: fake, namespace: "antojo-cart", ttl: time.Hour}

	_, found, err := storage.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, storage.Set(context.Background(), "user-1", `{"items":[]}`))
	require.Contains(t, fake.values, "antojo:antojo-cart:user-1")

	value, found, err := storage.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `{"items":[]}`, value)

	require.NoError(t, storage.Remove(context.Background(), "user-1"))
	_, found, err = storage.Get(context.Background(), "user-1")
	require.NoError(t, err)
	require.False(t, found)
}

func TestNewRedisStorageRequiresClient(t *testing.T) {
	_, err := NewRedisStorage(nil, config.CartConfig{})
	require.Error(t, err)
}
