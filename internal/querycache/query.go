package querycache

import (
	"context"
	"sync/atomic"

	"github.com/eventhub/eventhub/internal/metrics"
)

// Result is the typed view of a query for its consumers.
type Result[T any] struct {
	Data      T
	IsLoading bool
	Error     error
}

func resultOf[T any](st State) Result[T] {
	data, _ := st.Data.(T)
	return Result[T]{Data: data, IsLoading: st.Loading, Error: st.Err}
}

// Query binds a typed fetch function to a key of a Cache.
type Query[T any] struct {
	cache *Cache
	key   Key
	fetch FetchFunc
}

// NewQuery returns a Query that loads key with fn.
func NewQuery[T any](c *Cache, key Key, fn func(ctx context.Context) (T, error)) *Query[T] {
	return &Query[T]{
		cache: c,
		key:   key,
		fetch: func(ctx context.Context) (any, error) {
			return fn(ctx)
		},
	}
}

// Key returns the cache key of the query.
func (q *Query[T]) Key() Key { return q.key }

// Get returns the cached value, loading it first when absent or stale.
func (q *Query[T]) Get(ctx context.Context) (T, error) {
	v, err := q.cache.Fetch(ctx, q.key, q.fetch)
	return typed[T](v, err)
}

// Refetch loads the query regardless of its cached state.
func (q *Query[T]) Refetch(ctx context.Context) (T, error) {
	v, err := q.cache.Refetch(ctx, q.key, q.fetch)
	return typed[T](v, err)
}

// Result returns the current state of the query without loading it.
func (q *Query[T]) Result() Result[T] {
	return resultOf[T](q.cache.Peek(q.key))
}

// Watch mounts an observer on the query. onChange may be nil.
func (q *Query[T]) Watch(onChange func(Result[T])) *Observer {
	var cb func(State)
	if onChange != nil {
		cb = func(st State) { onChange(resultOf[T](st)) }
	}
	return q.cache.Watch(q.key, q.fetch, cb)
}

func typed[T any](v any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, nil
	}
	return out, nil
}

// MutationOptions configures the side effects of a Mutation.
type MutationOptions[In, Out any] struct {
	// Invalidates lists the keys marked stale after every successful call.
	Invalidates []Key
	OnSuccess   func(in In, out Out)
	OnError     func(in In, err error)
}

// Mutation is a remote write whose success invalidates a fixed set of keys.
type Mutation[In, Out any] struct {
	cache   *Cache
	name    string
	fn      func(ctx context.Context, in In) (Out, error)
	opts    MutationOptions[In, Out]
	pending atomic.Int64
}

// NewMutation returns a Mutation named name (used as metrics label) running fn.
func NewMutation[In, Out any](c *Cache, name string, fn func(ctx context.Context, in In) (Out, error), opts MutationOptions[In, Out]) *Mutation[In, Out] {
	return &Mutation[In, Out]{cache: c, name: name, fn: fn, opts: opts}
}

// Mutate runs the mutation. On success OnSuccess runs first and the declared
// keys are invalidated after it; on failure only OnError runs and the cache is
// left untouched.
func (m *Mutation[In, Out]) Mutate(ctx context.Context, in In) (Out, error) {
	m.pending.Add(1)
	defer m.pending.Add(-1)

	out, err := m.fn(ctx, in)
	metrics.Mutations.WithLabelValues(m.name, metrics.Outcome(err)).Inc()
	if err != nil {
		if m.opts.OnError != nil {
			m.opts.OnError(in, err)
		}
		return out, err
	}
	if m.opts.OnSuccess != nil {
		m.opts.OnSuccess(in, out)
	}
	m.cache.Invalidate(m.opts.Invalidates...)
	return out, nil
}

// IsPending reports whether a call of the mutation is in flight.
func (m *Mutation[In, Out]) IsPending() bool {
	return m.pending.Load() > 0
}
