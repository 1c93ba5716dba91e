// Package session hosts the server-side authorization state of signed-in
// sessions: TTL-bounded caches for menus and API permissions, the aggregate
// permission set evaluated on every guarded request, and the manager that
// lets role-level changes reach every affected session.
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Clock supplies the current time. Injected so expiry can be tested without
// sleeping.
type Clock func() time.Time

// Loader fetches a fresh copy of a cached resource.
type Loader[T any] func(ctx context.Context) (T, error)

// Stats is a snapshot of one cache's accounting. A hit is a call served
// from a valid cached value; every other call is a miss.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// resource is a single-value cache with a bounded lifetime. A value stored
// at T is served strictly before T+ttl; ttl <= 0 disables expiry.
// Concurrent loads collapse into one loader call whose outcome, value or
// error, is shared by every waiter. Failed loads are never cached.
type resource[T any] struct {
	name  string
	ttl   time.Duration
	clock Clock
	load  Loader[T]

	group singleflight.Group

	mu       sync.RWMutex
	value    T
	loadedAt time.Time
	ready    bool

	hits   atomic.Uint64
	misses atomic.Uint64
}

func newResource[T any](name string, ttl time.Duration, clock Clock, load Loader[T]) *resource[T] {
	if clock == nil {
		clock = time.Now
	}
	return &resource[T]{name: name, ttl: ttl, clock: clock, load: load}
}

// peek returns the cached value if one is present and still valid.
func (r *resource[T]) peek() (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.ready {
		var zero T
		return zero, false
	}
	if r.ttl > 0 && r.clock().Sub(r.loadedAt) >= r.ttl {
		var zero T
		return zero, false
	}
	return r.value, true
}

// get serves the cached value, loading a fresh one when it is missing,
// expired, or force is set.
func (r *resource[T]) get(ctx context.Context, force bool) (T, error) {
	if !force {
		if v, ok := r.peek(); ok {
			r.hits.Add(1)
			return v, nil
		}
	}
	r.misses.Add(1)

	v, err, _ := r.group.Do(r.name, func() (interface{}, error) {
		// A caller queued behind a finished load may find the cache warm
		// again.
		if !force {
			if v, ok := r.peek(); ok {
				return v, nil
			}
		}
		v, err := r.load(ctx)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.value = v
		r.loadedAt = r.clock()
		r.ready = true
		r.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// invalidate drops the cached value. It does not cancel a load already in
// flight.
func (r *resource[T]) invalidate() {
	r.mu.Lock()
	var zero T
	r.value = zero
	r.ready = false
	r.mu.Unlock()
}

func (r *resource[T]) stats() Stats {
	return Stats{Hits: r.hits.Load(), Misses: r.misses.Load()}
}
