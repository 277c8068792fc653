package cache

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Purger is implemented by caches that can be invalidated wholesale.
type Purger interface {
	Purge()
}

// ReadThrough fills an LRU from a loader, collapsing concurrent misses for the same key into one load.
type ReadThrough[T any] struct {
	lru   *LRU[T]
	group singleflight.Group
	// generation is bumped on Purge so a load that started before the purge is not stored.
	generation atomic.Uint64
}

// NewReadThrough returns a read-through cache holding at most size entries for ttl each.
func NewReadThrough[T any](size int, ttl time.Duration) *ReadThrough[T] {
	return &ReadThrough[T]{lru: NewLRU[T](size, ttl)}
}

// Get returns the cached value for key or calls load once for all concurrent callers.
// Errors are never cached.
func (r *ReadThrough[T]) Get(ctx context.Context, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if v, ok := r.lru.Get(key); ok {
		return v, nil
	}

	gen := r.generation.Load()
	v, err, _ := r.group.Do(key, func() (any, error) {
		value, err := load(ctx)
		if err != nil {
			return value, err
		}
		if r.generation.Load() == gen {
			r.lru.Set(key, value)
		}
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (r *ReadThrough[T]) Purge() {
	r.generation.Add(1)
	r.lru.Purge()
}

func (r *ReadThrough[T]) Len() int {
	return r.lru.Len()
}
