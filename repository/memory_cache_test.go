package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	defer cache.Stop()

	_, ok, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))

	val, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", val)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	cache := NewMemoryCache()
	defer cache.Stop()
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, "short", "1", time.Minute))
	require.NoError(t, cache.Set(ctx, "forever", "2", 0))

	now = now.Add(59 * time.Second)
	_, ok, _ := cache.Get(ctx, "short")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = cache.Get(ctx, "short")
	assert.False(t, ok)
	assert.Equal(t, 1, cache.Len())

	now = now.Add(24 * time.Hour)
	val, ok, _ := cache.Get(ctx, "forever")
	assert.True(t, ok)
	assert.Equal(t, "2", val)
}

func TestMemoryCache_Concurrent(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()
	defer cache.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = cache.Set(ctx, "shared", "v", time.Minute)
			_, _, _ = cache.Get(ctx, "shared")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, cache.Len())
}

func TestMemoryCache_SweepDropsExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	cache := NewMemoryCache()
	defer cache.Stop()
	cache.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("k%d", i), "v", time.Hour))
	}
	require.NoError(t, cache.Set(ctx, "forever", "v", 0))

	now = now.Add(48 * time.Hour)
	require.NoError(t, cache.Set(ctx, "fresh", "v", time.Hour))
	assert.Equal(t, 1002, cache.Len())

	cache.sweep()
	assert.Equal(t, 2, cache.Len())

	_, ok, _ := cache.Get(ctx, "fresh")
	assert.True(t, ok)
	_, ok, _ = cache.Get(ctx, "forever")
	assert.True(t, ok)
}

func TestMemoryCache_StopIsIdempotent(t *testing.T) {
	cache := NewMemoryCache()
	cache.Stop()
	cache.Stop()
}
