package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/chatmark/pkg/cache"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := cache.NewMemoryStore(2)
	require.NoError(t, err)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return now })

	require.NoError(t, store.Set(ctx, "k", "<p>v</p>", time.Second))

	v, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<p>v</p>", v)

	now = now.Add(2 * time.Second)
	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "a", "1", 0))
	require.NoError(t, store.Delete(ctx, "a"))
	assert.Zero(t, store.Len())
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	t.Parallel()

	store, err := cache.NewMemoryStore(2)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Set(ctx, "k", "v", 0), context.Canceled)
	_, _, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewMemoryStore_InvalidCapacity(t *testing.T) {
	t.Parallel()

	_, err := cache.NewMemoryStore(0)
	assert.ErrorIs(t, err, cache.ErrInvalidCapacity)
}
