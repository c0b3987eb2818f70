package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewRedisStore(setupTestRedis(t), "cwbot:test:")

	_, ok, err := s.Get(ctx, "profile:1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "profile:1", []byte(`{"id":1}`), time.Minute))
	v, ok, err := s.Get(ctx, "profile:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"id":1}`, string(v))

	require.NoError(t, s.Delete(ctx, "profile:1"))
	_, ok, err = s.Get(ctx, "profile:1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_Expires(t *testing.T) {
	ctx := context.Background()
	s := NewRedisStore(setupTestRedis(t), "cwbot:test:")

	require.NoError(t, s.Set(ctx, "time", []byte("x"), 100*time.Millisecond))
	time.Sleep(250 * time.Millisecond)

	_, ok, err := s.Get(ctx, "time")
	require.NoError(t, err)
	assert.False(t, ok)
}
