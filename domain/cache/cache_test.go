package cache_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/stretchr/testify/require"

	"github.com/rujira-labs/finsdk/domain/cache"
)

var defaultStartTime = time.Unix(1_700_000_000, 0)

func TestCache_GetSet(t *testing.T) {
	testClock := clock.NewTestClock(defaultStartTime)
	c := cache.New[string](10, time.Minute, cache.WithClock(testClock))

	_, ok := c.Get("key1")
	require.False(t, ok)

	c.Set("key1", "value1")
	value, ok := c.Get("key1")
	require.True(t, ok)
	require.Equal(t, "value1", value)

	c.Set("key1", "value2")
	value, ok = c.Get("key1")
	require.True(t, ok)
	require.Equal(t, "value2", value)
}

func TestCache_Expiry(t *testing.T) {
	testClock := clock.NewTestClock(defaultStartTime)
	c := cache.New[int](10, 30*time.Second, cache.WithClock(testClock))

	c.Set("key1", 1)

	testClock.SetTime(defaultStartTime.Add(29 * time.Second))
	_, ok := c.Get("key1")
	require.True(t, ok)

	// Visible only while now < expiresAt.
	testClock.SetTime(defaultStartTime.Add(30 * time.Second))
	_, ok = c.Get("key1")
	require.False(t, ok)

	// Lazily purged on access.
	require.Equal(t, 0, c.Stats().Size)
}

func TestCache_EvictsFirstInserted(t *testing.T) {
	const maxSize = 5
	c := cache.New[int](maxSize, time.Minute, cache.WithClock(clock.NewTestClock(defaultStartTime)))

	for i := 0; i < maxSize; i++ {
		c.Set(fmt.Sprintf("key%d", i), i)
	}

	// Reads must not affect eviction order.
	_, ok := c.Get("key0")
	require.True(t, ok)

	c.Set("key5", 5)

	_, ok = c.Get("key0")
	require.False(t, ok)
	for i := 1; i <= maxSize; i++ {
		_, ok := c.Get(fmt.Sprintf("key%d", i))
		require.True(t, ok, "key%d should be present", i)
	}
	require.Equal(t, maxSize, c.Stats().Size)
}

func TestCache_ResetMovesToNewest(t *testing.T) {
	c := cache.New[int](2, time.Minute, cache.WithClock(clock.NewTestClock(defaultStartTime)))

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 3)
	c.Set("c", 4)

	_, ok := c.Get("b")
	require.False(t, ok)
	value, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 3, value)
}

func TestCache_Invalidate(t *testing.T) {
	c := cache.New[int](10, time.Minute, cache.WithClock(clock.NewTestClock(defaultStartTime)))

	c.Set("THOR.RUNE/BTC.BTC/100", 1)
	c.Set("THOR.RUNE/BTC.BTC/200", 2)
	c.Set("THOR.RUNE/ETH.ETH/100", 3)

	c.Invalidate("THOR.RUNE/ETH.ETH/100")
	_, ok := c.Get("THOR.RUNE/ETH.ETH/100")
	require.False(t, ok)

	removed := c.InvalidateByPrefix("THOR.RUNE/BTC.BTC/")
	require.Equal(t, 2, removed)
	require.Equal(t, 0, c.Stats().Size)

	c.Set("x", 1)
	c.Clear()
	require.Equal(t, 0, c.Stats().Size)
}

func TestCache_Prune(t *testing.T) {
	testClock := clock.NewTestClock(defaultStartTime)
	c := cache.New[int](10, 10*time.Second, cache.WithClock(testClock))

	c.Set("old1", 1)
	c.Set("old2", 2)

	testClock.SetTime(defaultStartTime.Add(5 * time.Second))
	c.Set("new", 3)

	testClock.SetTime(defaultStartTime.Add(11 * time.Second))
	require.Equal(t, 2, c.Prune())

	stats := c.Stats()
	require.Equal(t, cache.Stats{Size: 1, MaxSize: 10, TTL: 10 * time.Second}, stats)
}
