package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU_GetSet(t *testing.T) {
	c := NewLRU[string](2, time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	// "b" is now least recently used and is evicted.
	c.Set("c", "3")
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestLRU_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewLRU[int](10, time.Second)
	c.now = func() time.Time { return now }

	c.Set("k", 42)
	now = now.Add(2 * time.Second)

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestLRU_DeleteAndPurge(t *testing.T) {
	c := NewLRU[int](10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	assert.Equal(t, 1, c.Len())

	c.Purge()
	assert.Zero(t, c.Len())
	_, ok := c.Get("b")
	assert.False(t, ok)
}

func TestReadThrough_CollapsesConcurrentLoads(t *testing.T) {
	rt := NewReadThrough[[]string](4, time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})

	load := func(context.Context) ([]string, error) {
		calls.Add(1)
		<-release
		return []string{"x"}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := rt.Get(context.Background(), "sections", load)
			assert.NoError(t, err)
			assert.Equal(t, []string{"x"}, v)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())

	_, err := rt.Get(context.Background(), "sections", load)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load(), "second read is served from cache")
}

func TestReadThrough_ErrorsAreNotCached(t *testing.T) {
	rt := NewReadThrough[int](4, time.Minute)
	boom := errors.New("boom")

	_, err := rt.Get(context.Background(), "k", func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, rt.Len())

	v, err := rt.Get(context.Background(), "k", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestReadThrough_PurgeDropsInFlightResult(t *testing.T) {
	rt := NewReadThrough[int](4, time.Minute)

	v, err := rt.Get(context.Background(), "k", func(context.Context) (int, error) {
		rt.Purge()
		return 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Zero(t, rt.Len())
}
