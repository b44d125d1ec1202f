// Package loader keeps a fetched collection up to date without letting a
// superseded fetch overwrite a newer one.
//
// Every Refresh bumps a generation counter and cancels the fetch that was
// still in flight. When a fetch returns, its result is applied only if its
// generation is still the latest; otherwise it is dropped.
package loader

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// ErrSuperseded is returned by Refresh when a newer refresh started before
// this one finished.
var ErrSuperseded = errors.New("refresh superseded by a newer fetch")

// ErrClosed is returned by Refresh after Close.
var ErrClosed = errors.New("collection closed")

// FetchFunc loads the full collection. It must honour ctx cancellation.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Collection is a snapshot of a remote collection that is fully replaced on
// every successful refresh.
type Collection[T any] struct {
	name    string
	fetch   FetchFunc[T]
	onError func(name string, err error)

	mu        sync.Mutex
	gen       uint64
	cancel    context.CancelFunc
	items     []T
	err       error
	loadedAt  time.Time
	inFlight  bool
	closed    bool
	listeners []func()
}

// Option configures a Collection.
type Option[T any] func(*Collection[T])

// WithErrorHandler replaces the default slog-based fetch failure report.
func WithErrorHandler[T any](fn func(name string, err error)) Option[T] {
	return func(c *Collection[T]) { c.onError = fn }
}

// New creates an empty collection; call Refresh to load it.
func New[T any](name string, fetch FetchFunc[T], opts ...Option[T]) *Collection[T] {
	c := &Collection[T]{
		name:  name,
		fetch: fetch,
		onError: func(name string, err error) {
			slog.Warn("collection fetch failed", "collection", name, "error", err)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Refresh fetches the collection and replaces the snapshot. On failure the
// snapshot becomes empty and the error is reported. If another Refresh starts
// before this one completes, this one's context is cancelled and its result
// discarded with ErrSuperseded.
func (c *Collection[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.inFlight = true
	c.mu.Unlock()

	items, err := c.fetch(fetchCtx)

	c.mu.Lock()
	if gen != c.gen || c.closed {
		c.mu.Unlock()
		cancel()
		return ErrSuperseded
	}
	cancel()
	c.cancel = nil
	c.inFlight = false
	if err != nil {
		c.items = nil
		c.err = err
	} else {
		c.items = items
		c.err = nil
		c.loadedAt = time.Now()
	}
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	if err != nil {
		c.onError(c.name, err)
	}
	for _, fn := range listeners {
		fn()
	}
	return err
}

// Items returns a copy of the current snapshot. An empty slice is returned
// before the first successful load or after a failed one.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Err returns the error from the last applied refresh, if any.
func (c *Collection[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Loading reports whether a refresh is in flight.
func (c *Collection[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// LoadedAt returns when the snapshot was last replaced successfully.
func (c *Collection[T]) LoadedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadedAt
}

// OnChange registers fn to run after every applied refresh.
func (c *Collection[T]) OnChange(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Close cancels any in-flight fetch and rejects further refreshes.
func (c *Collection[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.inFlight = false
}
