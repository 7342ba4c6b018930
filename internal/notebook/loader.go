package notebook

import (
	"context"
	"sync"
)

// FetchFunc resolves the value for a cache key.
type FetchFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Loader is a keyed lazy cache: each key is fetched at most once and served
// from memory until invalidated. Concurrent requests for the same key coalesce
// onto a single fetch. Failed fetches are not cached, so the next request for
// the key retries.
type Loader[K comparable, V any] struct {
	mu       sync.Mutex
	fetch    FetchFunc[K, V]
	cache    map[K]V
	inflight map[K]*inflightCall[V]
	gen      map[K]uint64
}

type inflightCall[V any] struct {
	done  chan struct{}
	value V
	err   error
}

// NewLoader constructs a loader around the given fetch function.
func NewLoader[K comparable, V any](fetch FetchFunc[K, V]) *Loader[K, V] {
	return &Loader[K, V]{
		fetch:    fetch,
		cache:    make(map[K]V),
		inflight: make(map[K]*inflightCall[V]),
		gen:      make(map[K]uint64),
	}
}

// Get returns the cached value for key, fetching it on first use. Callers
// arriving while a fetch for the same key is in flight share its result.
func (l *Loader[K, V]) Get(ctx context.Context, key K) (V, error) {
	l.mu.Lock()
	if value, ok := l.cache[key]; ok {
		l.mu.Unlock()
		return value, nil
	}
	if call, ok := l.inflight[key]; ok {
		l.mu.Unlock()
		select {
		case <-call.done:
			return call.value, call.err
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err()
		}
	}

	call := &inflightCall[V]{done: make(chan struct{})}
	l.inflight[key] = call
	started := l.gen[key]
	l.mu.Unlock()

	call.value, call.err = l.fetch(ctx, key)

	l.mu.Lock()
	delete(l.inflight, key)
	// A write may have invalidated the key while the fetch was in flight;
	// caching would then serve a stale value, so the result is only handed to
	// the coalesced waiters.
	if call.err == nil && l.gen[key] == started {
		l.cache[key] = call.value
	}
	l.mu.Unlock()

	close(call.done)
	return call.value, call.err
}

// Peek returns the cached value for key without triggering a fetch.
func (l *Loader[K, V]) Peek(key K) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	value, ok := l.cache[key]
	return value, ok
}

// Invalidate drops the cached value for key so the next Get refetches.
func (l *Loader[K, V]) Invalidate(key K) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.cache, key)
	l.gen[key]++
}

// InvalidateAll drops every cached value.
func (l *Loader[K, V]) InvalidateAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key := range l.cache {
		l.gen[key]++
	}
	for key := range l.inflight {
		l.gen[key]++
	}
	l.cache = make(map[K]V)
}
