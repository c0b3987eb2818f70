package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestMemoryStore(capacity int) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(capacity)
	s.now = clock.now
	return s, clock
}

func TestMemoryStore_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestMemoryStore(10)

	require.NoError(t, s.Set(ctx, "profile:1", []byte("a"), 10*time.Second))

	v, ok, err := s.Get(ctx, "profile:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("a"), v)

	clock.advance(10 * time.Second)
	_, ok, err = s.Get(ctx, "profile:1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, s.Len())
}

func TestMemoryStore_EvictsSoonestToExpire(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestMemoryStore(2)

	require.NoError(t, s.Set(ctx, "time", []byte("t"), 10*time.Second))
	require.NoError(t, s.Set(ctx, "profile:1", []byte("p"), 60*time.Second))
	require.NoError(t, s.Set(ctx, "leaderboard:1", []byte("l"), 30*time.Second))

	assert.Equal(t, 2, s.Len())
	_, ok, _ := s.Get(ctx, "time")
	assert.False(t, ok)
	_, ok, _ = s.Get(ctx, "profile:1")
	assert.True(t, ok)
	_, ok, _ = s.Get(ctx, "leaderboard:1")
	assert.True(t, ok)
}

func TestMemoryStore_EvictsExpiredBeforeLive(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestMemoryStore(3)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Set(ctx, fmt.Sprintf("old:%d", i), []byte("x"), time.Second))
	}
	clock.advance(2 * time.Second)
	require.NoError(t, s.Set(ctx, "new", []byte("y"), time.Second))

	assert.Equal(t, 1, s.Len())
	_, ok, _ := s.Get(ctx, "new")
	assert.True(t, ok)
}

func TestMemoryStore_ZeroTTLIsNotStored(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestMemoryStore(3)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))
	_, ok, _ := s.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestMemoryStore(3)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, s.Delete(ctx, "k"))
	_, ok, _ := s.Get(ctx, "k")
	assert.False(t, ok)
}
