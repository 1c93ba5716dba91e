package session

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

// fakeClock is a manually advanced clock for expiry tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1700000000, 0)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// waitUntil polls cond until it holds or the deadline passes.
func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestResourceServesCachedValue(t *testing.T) {
	var loads atomic.Int32
	r := newResource("menus", time.Minute, nil, func(ctx context.Context) (string, error) {
		loads.Add(1)
		return "v1", nil
	})

	for i := 0; i < 5; i++ {
		v, err := r.get(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, "v1", v)
	}

	assert.EqualValues(t, 1, loads.Load())
	assert.Equal(t, Stats{Hits: 4, Misses: 1}, r.stats())
}

func TestResourceExpiryBoundary(t *testing.T) {
	fc := newFakeClock()
	var loads atomic.Int32
	r := newResource("menus", time.Minute, fc.Now, func(ctx context.Context) (string, error) {
		loads.Add(1)
		return "v", nil
	})

	_, err := r.get(context.Background(), false)
	require.NoError(t, err)

	// One tick before the lifetime ends the value is still served.
	fc.Advance(time.Minute - time.Nanosecond)
	_, err = r.get(context.Background(), false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, loads.Load())

	// At exactly the lifetime the value is expired.
	fc.Advance(time.Nanosecond)
	_, err = r.get(context.Background(), false)
	require.NoError(t, err)
	assert.EqualValues(t, 2, loads.Load())
}

func TestResourceNonPositiveTTLNeverExpires(t *testing.T) {
	fc := newFakeClock()
	var loads atomic.Int32
	r := newResource("menus", 0, fc.Now, func(ctx context.Context) (string, error) {
		loads.Add(1)
		return "v", nil
	})

	_, err := r.get(context.Background(), false)
	require.NoError(t, err)

	fc.Advance(10 * 365 * 24 * time.Hour)
	_, err = r.get(context.Background(), false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, loads.Load())
}

func TestResourceForceReloads(t *testing.T) {
	var loads atomic.Int32
	r := newResource("menus", time.Minute, nil, func(ctx context.Context) (int, error) {
		return int(loads.Add(1)), nil
	})

	v, err := r.get(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = r.get(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestResourceErrorNotCached(t *testing.T) {
	boom := errors.New("backend down")
	var loads atomic.Int32
	r := newResource("menus", time.Minute, nil, func(ctx context.Context) (string, error) {
		if loads.Add(1) == 1 {
			return "", boom
		}
		return "recovered", nil
	})

	_, err := r.get(context.Background(), false)
	require.ErrorIs(t, err, boom)

	// The failure was not cached; the next call loads again and succeeds.
	v, err := r.get(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
	assert.EqualValues(t, 2, loads.Load())
}

func TestResourceInvalidate(t *testing.T) {
	var loads atomic.Int32
	r := newResource("menus", time.Minute, nil, func(ctx context.Context) (int, error) {
		return int(loads.Add(1)), nil
	})

	_, err := r.get(context.Background(), false)
	require.NoError(t, err)

	r.invalidate()

	v, err := r.get(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestResourceConcurrentLoadsCollapse(t *testing.T) {
	release := make(chan struct{})
	var loads atomic.Int32
	r := newResource("menus", time.Minute, nil, func(ctx context.Context) (string, error) {
		loads.Add(1)
		<-release
		return "shared", nil
	})

	const callers = 10
	results := make(chan string, callers)
	for i := 0; i < callers; i++ {
		go func() {
			v, err := r.get(context.Background(), false)
			if err != nil {
				results <- "error: " + err.Error()
				return
			}
			results <- v
		}()
	}

	waitUntil(t, func() bool { return loads.Load() == 1 })
	close(release)

	for i := 0; i < callers; i++ {
		assert.Equal(t, "shared", <-results)
	}
	assert.EqualValues(t, 1, loads.Load())
}

func TestResourceConcurrentLoadFailureShared(t *testing.T) {
	boom := errors.New("backend down")
	release := make(chan struct{})
	var loads atomic.Int32
	r := newResource("menus", time.Minute, nil, func(ctx context.Context) (string, error) {
		loads.Add(1)
		<-release
		return "", boom
	})

	const callers = 5
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		go func() {
			_, err := r.get(context.Background(), false)
			errs <- err
		}()
	}

	waitUntil(t, func() bool { return loads.Load() >= 1 })
	close(release)

	for i := 0; i < callers; i++ {
		assert.ErrorIs(t, <-errs, boom)
	}
	// Nothing was cached by the failed flight.
	_, ok := r.peek()
	assert.False(t, ok)
}
