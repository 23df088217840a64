// Package querycache caches query results per logical key, de-duplicates
// concurrent loads of the same key and refetches invalidated keys for their
// mounted observers.
package querycache

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/eventhub/eventhub/internal/metrics"
)

// Key is the stable name of a cached query.
type Key string

// FetchFunc loads the value of a query from the remote store.
type FetchFunc func(ctx context.Context) (any, error)

// State is a snapshot of one cache entry.
type State struct {
	Data      any
	HasData   bool
	Err       error
	Loading   bool
	Stale     bool
	UpdatedAt time.Time
}

type entry struct {
	key        Key
	fetch      FetchFunc
	data       any
	hasData    bool
	err        error
	inflight   int
	stale      bool
	generation uint64
	// applied is the generation the stored data or error was loaded for.
	applied    uint64
	updatedAt  time.Time
	observers  map[*Observer]struct{}
}

func (e *entry) state() State {
	return State{
		Data:      e.data,
		HasData:   e.hasData,
		Err:       e.err,
		Loading:   e.inflight > 0,
		Stale:     e.stale,
		UpdatedAt: e.updatedAt,
	}
}

// Cache holds the query results of one client.
type Cache struct {
	ctx    context.Context
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	entries map[Key]*entry
	group   singleflight.Group
	wg      sync.WaitGroup
}

// New returns an empty Cache. Background refetches run with ctx.
func New(ctx context.Context, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		ctx:     context.WithoutCancel(ctx),
		logger:  logger,
		now:     time.Now,
		entries: make(map[Key]*entry),
	}
}

// entryLocked returns the entry for key, creating it if needed. A non-nil
// fetch replaces the registered fetch function. c.mu must be held.
func (c *Cache) entryLocked(key Key, fetch FetchFunc) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{key: key, observers: make(map[*Observer]struct{})}
		c.entries[key] = e
	}
	if fetch != nil {
		e.fetch = fetch
	}
	return e
}

// Fetch returns the cached value of key if it is present and not stale, and
// loads it with fetch otherwise. Concurrent callers share one in-flight load.
func (c *Cache) Fetch(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	c.mu.Lock()
	e := c.entryLocked(key, fetch)
	if e.hasData && !e.stale {
		data := e.data
		c.mu.Unlock()
		metrics.QueryCacheLookups.WithLabelValues(string(key), "hit").Inc()
		return data, nil
	}
	c.mu.Unlock()
	metrics.QueryCacheLookups.WithLabelValues(string(key), "miss").Inc()
	return c.load(ctx, e)
}

// Refetch loads key unconditionally with its registered fetch function,
// joining a load that is already in flight for the current generation.
func (c *Cache) Refetch(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	c.mu.Lock()
	e := c.entryLocked(key, fetch)
	c.mu.Unlock()
	return c.load(ctx, e)
}

// Peek returns the current state of key without loading it.
func (c *Cache) Peek(key Key) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return State{}
	}
	return e.state()
}

// load runs the registered fetch of e. The flight key carries the entry
// generation so that a load started after an invalidation never joins one
// started before it. A result older than the one already stored is dropped.
// The fetch runs to completion even if ctx is cancelled.
func (c *Cache) load(ctx context.Context, e *entry) (any, error) {
	c.mu.Lock()
	gen := e.generation
	fetch := e.fetch
	c.mu.Unlock()
	if fetch == nil {
		return nil, errNoFetch(e.key)
	}

	flight := string(e.key) + "#" + strconv.FormatUint(gen, 10)
	v, err, _ := c.group.Do(flight, func() (any, error) {
		c.mu.Lock()
		e.inflight++
		observers := e.snapshotObservers()
		st := e.state()
		c.mu.Unlock()
		notify(observers, st)

		start := c.now()
		data, err := fetch(context.WithoutCancel(ctx))
		metrics.QueryLoadDuration.WithLabelValues(string(e.key)).Observe(c.now().Sub(start).Seconds())
		metrics.QueryLoads.WithLabelValues(string(e.key), metrics.Outcome(err)).Inc()

		c.mu.Lock()
		e.inflight--
		superseded := gen < e.applied
		switch {
		case superseded:
		case err != nil:
			// Keep the last good data; only the error slot changes.
			e.err = err
			e.applied = gen
		default:
			e.data = data
			e.hasData = true
			e.err = nil
			e.updatedAt = c.now()
			e.applied = gen
			e.stale = e.generation != gen
		}
		// Observers mounted while this load ran still need the current generation.
		needsRefetch := e.applied < e.generation && e.inflight == 0 && len(e.observers) > 0
		observers = e.snapshotObservers()
		st = e.state()
		c.mu.Unlock()

		notify(observers, st)
		if err != nil {
			c.logger.Debug("query load failed", "key", e.key, "err", err)
		}
		if superseded {
			c.logger.Debug("dropped superseded query result", "key", e.key, "generation", gen)
		}
		if needsRefetch {
			c.refetchInBackground(e)
		}
		return data, err
	})
	return v, err
}

func (e *entry) snapshotObservers() []*Observer {
	out := make([]*Observer, 0, len(e.observers))
	for o := range e.observers {
		out = append(out, o)
	}
	return out
}

func (c *Cache) refetchInBackground(e *entry) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if _, err := c.load(c.ctx, e); err != nil {
			c.logger.Debug("background refetch failed", "key", e.key, "err", err)
		}
	}()
}

// Invalidate marks the given keys stale. Keys with mounted observers are
// refetched in the background; the others refetch on their next Fetch or Watch.
func (c *Cache) Invalidate(keys ...Key) {
	var refetch []*entry
	c.mu.Lock()
	for _, key := range keys {
		metrics.QueryInvalidations.WithLabelValues(string(key)).Inc()
		e, ok := c.entries[key]
		if !ok {
			continue
		}
		e.stale = true
		e.generation++
		if len(e.observers) > 0 && e.fetch != nil {
			refetch = append(refetch, e)
		}
	}
	c.mu.Unlock()

	for _, e := range refetch {
		c.refetchInBackground(e)
	}
}

// Watch mounts an observer on key. The entry is loaded in the background when
// it has no data yet or is stale. onChange, if set, receives every state change
// until the observer is unmounted.
func (c *Cache) Watch(key Key, fetch FetchFunc, onChange func(State)) *Observer {
	o := &Observer{cache: c, key: key, onChange: onChange}

	c.mu.Lock()
	e := c.entryLocked(key, fetch)
	e.observers[o] = struct{}{}
	o.entry = e
	needsLoad := (!e.hasData || e.stale) && e.inflight == 0 && e.fetch != nil
	c.mu.Unlock()

	if needsLoad {
		c.refetchInBackground(e)
	}
	return o
}

// Wait blocks until every background refetch started so far has finished.
func (c *Cache) Wait() {
	c.wg.Wait()
}

// Observer is a mounted consumer of one key.
type Observer struct {
	cache    *Cache
	key      Key
	entry    *entry
	onChange func(State)
}

// Key returns the observed key.
func (o *Observer) Key() Key { return o.key }

// State returns the current state of the observed entry.
func (o *Observer) State() State {
	o.cache.mu.Lock()
	defer o.cache.mu.Unlock()
	return o.entry.state()
}

// Unmount detaches the observer; later invalidations of its key no longer
// trigger a background refetch on its behalf.
func (o *Observer) Unmount() {
	o.cache.mu.Lock()
	delete(o.entry.observers, o)
	o.cache.mu.Unlock()
}

func notify(observers []*Observer, st State) {
	for _, o := range observers {
		if o.onChange != nil {
			o.onChange(st)
		}
	}
}
