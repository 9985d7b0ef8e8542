package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestMemoryCache(ttl time.Duration, maxEntries int) (*MemoryCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	return newMemoryCache(ttl, maxEntries, clock.Now), clock
}

func TestMemoryCache(t *testing.T) {
	cache, _ := newTestMemoryCache(time.Hour, 10)
	ctx := context.Background()

	_, found, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, cache.Set(ctx, "a", "1"))
	require.NoError(t, cache.Set(ctx, "a", "2"))

	val, found, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "2", val)
	require.Equal(t, 1, cache.Len())
}

func TestMemoryCacheExpiresEntries(t *testing.T) {
	cache, clock := newTestMemoryCache(10*time.Minute, 10)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "installment:1000:10", "cached"))

	clock.Advance(9 * time.Minute)
	_, found, err := cache.Get(ctx, "installment:1000:10")
	require.NoError(t, err)
	require.True(t, found)

	clock.Advance(time.Minute)
	_, found, err = cache.Get(ctx, "installment:1000:10")
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, 0, cache.Len())
}

func TestMemoryCacheSweepDropsExpired(t *testing.T) {
	cache, clock := newTestMemoryCache(time.Minute, 100)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("old%d", i), "v"))
	}
	clock.Advance(2 * time.Minute)
	require.NoError(t, cache.Set(ctx, "fresh", "v"))

	cache.mu.Lock()
	cache.sweep()
	cache.mu.Unlock()

	require.Equal(t, 1, cache.Len())
}

func TestMemoryCacheRespectsMaxEntries(t *testing.T) {
	cache, clock := newTestMemoryCache(time.Hour, 3)
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("installment:%d:10", i+1), "v"))
		clock.Advance(time.Second)
	}
	require.Equal(t, 3, cache.Len())

	// The most recent entries survive.
	_, found, _ := cache.Get(ctx, "installment:1000:10")
	require.True(t, found)
	_, found, _ = cache.Get(ctx, "installment:1:10")
	require.False(t, found)
}

func TestMemoryCacheStopIsIdempotent(t *testing.T) {
	cache := NewMemoryCache(time.Minute, 10)
	cache.Stop()
	cache.Stop()
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	cache, _ := newTestMemoryCache(time.Hour, 100)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%5)
			_ = cache.Set(ctx, key, "v")
			_, _, _ = cache.Get(ctx, key)
		}(i)
	}
	wg.Wait()
	require.Equal(t, 5, cache.Len())
}

var _ CacheRepository = (*MemoryCache)(nil)
var _ CacheRepository = (*RedisCache)(nil)
