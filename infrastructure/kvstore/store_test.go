package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return client, mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, "dashboard:last_sync:")
	ctx := context.Background()

	last, err := store.GetLastSync(ctx, "act_1")
	require.NoError(t, err)
	assert.Nil(t, last, "conta nunca sincronizada")

	at := time.Date(2024, 5, 1, 13, 45, 10, 500, time.UTC)
	require.NoError(t, store.SetLastSync(ctx, "act_1", at))

	assert.True(t, mr.Exists("dashboard:last_sync:act_1"))

	last, err = store.GetLastSync(ctx, "act_1")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, at.Equal(*last))
}

func TestRedisStore_InvalidValue(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, "p:")
	require.NoError(t, mr.Set("p:act_1", "not-a-time"))

	last, err := store.GetLastSync(context.Background(), "act_1")
	assert.Error(t, err)
	assert.Nil(t, last)
}

func TestRedisStore_ConnectionError(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	store := NewRedisStore(client, "p:")
	mr.Close()

	_, err = store.GetLastSync(context.Background(), "act_1")
	assert.Error(t, err)
	assert.Error(t, store.SetLastSync(context.Background(), "act_1", time.Now()))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	last, err := store.GetLastSync(ctx, "act_1")
	require.NoError(t, err)
	assert.Nil(t, last)

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.SetLastSync(ctx, "act_1", at))

	last, err = store.GetLastSync(ctx, "act_1")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, at, *last)
}
