package querycache

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

type countingFetch struct {
	calls atomic.Int32
	gate  chan struct{}

	mu    sync.Mutex
	value any
	err   error
}

func newCountingFetch(v any) *countingFetch {
	return &countingFetch{value: v}
}

func (f *countingFetch) fetch(ctx context.Context) (any, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.value, nil
}

func (f *countingFetch) set(v any, err error) {
	f.mu.Lock()
	f.value, f.err = v, err
	f.mu.Unlock()
}

func TestCache_FetchReturnsCachedValue(t *testing.T) {
	c := New(context.Background(), nil)
	f := newCountingFetch([]string{"a"})

	v, err := c.Fetch(context.Background(), "k", f.fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, v)

	v, err = c.Fetch(context.Background(), "k", f.fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, v)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestCache_ConcurrentFetchSharesOneLoad(t *testing.T) {
	c := New(context.Background(), nil)
	f := newCountingFetch(42)
	f.gate = make(chan struct{})

	const n = 10
	var wg sync.WaitGroup
	results := make([]any, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Fetch(context.Background(), "k", f.fetch)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	require.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, time.Millisecond)
	// Give the remaining callers time to join the flight before releasing it.
	time.Sleep(20 * time.Millisecond)
	close(f.gate)
	wg.Wait()

	assert.Equal(t, int32(1), f.calls.Load())
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}

func TestCache_LoadSurvivesCallerCancellation(t *testing.T) {
	c := New(context.Background(), nil)
	var sawCancel atomic.Bool
	fetch := func(ctx context.Context) (any, error) {
		sawCancel.Store(ctx.Err() != nil)
		return "done", nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	v, err := c.Fetch(ctx, "k", fetch)
	require.NoError(t, err)
	assert.Equal(t, "done", v)
	assert.False(t, sawCancel.Load())
}

func TestCache_FailureKeepsPreviousData(t *testing.T) {
	c := New(context.Background(), nil)
	f := newCountingFetch("v1")

	_, err := c.Fetch(context.Background(), "k", f.fetch)
	require.NoError(t, err)

	boom := errors.New("boom")
	f.set("unused", boom)
	_, err = c.Refetch(context.Background(), "k", f.fetch)
	require.ErrorIs(t, err, boom)

	st := c.Peek("k")
	assert.True(t, st.HasData)
	assert.Equal(t, "v1", st.Data)
	assert.ErrorIs(t, st.Err, boom)
	assert.False(t, st.Loading)

	f.set("v2", nil)
	_, err = c.Refetch(context.Background(), "k", f.fetch)
	require.NoError(t, err)
	st = c.Peek("k")
	assert.Equal(t, "v2", st.Data)
	assert.NoError(t, st.Err)
}

func TestCache_InvalidateUnmountedKeyRefetchesLazily(t *testing.T) {
	c := New(context.Background(), nil)
	f := newCountingFetch("v1")

	_, err := c.Fetch(context.Background(), "k", f.fetch)
	require.NoError(t, err)

	f.set("v2", nil)
	c.Invalidate("k")
	c.Wait()
	assert.Equal(t, int32(1), f.calls.Load(), "no observer, no background refetch")
	assert.True(t, c.Peek("k").Stale)

	v, err := c.Fetch(context.Background(), "k", f.fetch)
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
	assert.Equal(t, int32(2), f.calls.Load())
	assert.False(t, c.Peek("k").Stale)
}

func TestCache_InvalidateMountedKeyRefetchesInBackground(t *testing.T) {
	c := New(context.Background(), nil)
	f := newCountingFetch("v1")

	var mu sync.Mutex
	var seen []any
	obs := c.Watch("k", f.fetch, func(st State) {
		mu.Lock()
		defer mu.Unlock()
		if st.HasData && !st.Loading {
			seen = append(seen, st.Data)
		}
	})
	defer obs.Unmount()
	c.Wait()
	assert.Equal(t, "v1", obs.State().Data)

	f.set("v2", nil)
	c.Invalidate("k")
	c.Wait()

	assert.Equal(t, int32(2), f.calls.Load())
	assert.Equal(t, "v2", obs.State().Data)
	mu.Lock()
	assert.Equal(t, []any{"v1", "v2"}, seen)
	mu.Unlock()
}

func TestCache_UnmountStopsBackgroundRefetch(t *testing.T) {
	c := New(context.Background(), nil)
	f := newCountingFetch("v1")

	obs := c.Watch("k", f.fetch, nil)
	c.Wait()
	obs.Unmount()

	c.Invalidate("k")
	c.Wait()
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestCache_WatchFreshEntryDoesNotLoad(t *testing.T) {
	c := New(context.Background(), nil)
	f := newCountingFetch("v1")

	_, err := c.Fetch(context.Background(), "k", f.fetch)
	require.NoError(t, err)

	obs := c.Watch("k", f.fetch, nil)
	defer obs.Unmount()
	c.Wait()
	assert.Equal(t, int32(1), f.calls.Load())
	assert.Equal(t, Key("k"), obs.Key())
}

func TestCache_InvalidateDuringLoadLeavesEntryStale(t *testing.T) {
	c := New(context.Background(), nil)
	f := newCountingFetch("old")
	f.gate = make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Fetch(context.Background(), "k", f.fetch)
	}()
	require.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, time.Millisecond)

	c.Invalidate("k")
	close(f.gate)
	<-done

	st := c.Peek("k")
	assert.True(t, st.HasData)
	assert.True(t, st.Stale, "a load started before the invalidation must not clear it")
}

func TestCache_LoadFinishingAfterNewerLoadIsDropped(t *testing.T) {
	c := New(context.Background(), nil)
	before := newCountingFetch("before-mutation")
	before.gate = make(chan struct{})
	after := newCountingFetch("after-mutation")

	done := make(chan struct{})
	go func() {
		defer close(done)
		v, err := c.Fetch(context.Background(), "k", before.fetch)
		assert.NoError(t, err)
		assert.Equal(t, "before-mutation", v)
	}()
	require.Eventually(t, func() bool { return before.calls.Load() == 1 }, time.Second, time.Millisecond)

	c.Invalidate("k")
	v, err := c.Fetch(context.Background(), "k", after.fetch)
	require.NoError(t, err)
	assert.Equal(t, "after-mutation", v)

	close(before.gate)
	<-done

	st := c.Peek("k")
	assert.Equal(t, "after-mutation", st.Data)
	assert.False(t, st.Stale)
	assert.False(t, st.Loading)

	v, err = c.Fetch(context.Background(), "k", after.fetch)
	require.NoError(t, err)
	assert.Equal(t, "after-mutation", v)
	assert.Equal(t, int32(1), after.calls.Load())
}

func TestCache_OverlappingLoadsForObserverFetchOnceEach(t *testing.T) {
	c := New(context.Background(), nil)
	var calls atomic.Int32
	gate := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			<-gate
			return "old", nil
		}
		return "new", nil
	}

	o := c.Watch("k", fetch, nil)
	defer o.Unmount()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	c.Invalidate("k")
	require.Eventually(t, func() bool { return o.State().Data == "new" }, time.Second, time.Millisecond)

	close(gate)
	c.Wait()

	st := o.State()
	assert.Equal(t, "new", st.Data)
	assert.False(t, st.Stale)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCache_ObserverMountedDuringStaleLoadGetsCurrentData(t *testing.T) {
	c := New(context.Background(), nil)
	var calls atomic.Int32
	gate := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			<-gate
			return "old", nil
		}
		return "new", nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Fetch(context.Background(), "k", fetch)
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	c.Invalidate("k")
	o := c.Watch("k", nil, nil)
	defer o.Unmount()

	close(gate)
	<-done
	c.Wait()

	st := o.State()
	assert.Equal(t, "new", st.Data)
	assert.False(t, st.Stale)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCache_RefetchWithoutFetchFunction(t *testing.T) {
	c := New(context.Background(), nil)
	_, err := c.Refetch(context.Background(), "missing", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestCache_InvalidateUnknownKeyIsNoop(t *testing.T) {
	c := New(context.Background(), nil)
	c.Invalidate("nothing")
	c.Wait()
	assert.Equal(t, State{}, c.Peek("nothing"))
}
