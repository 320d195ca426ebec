// Package syncer keeps a local projection of a remote collection
// consistent under optimistic mutation: mutate locally first, issue the
// remote call, roll back the projection if the call fails. Cart, wishlist
// and bookings all specialize the same Collection.
package syncer

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrPending rejects a second mutation on an item whose remote call has
// not resolved yet. Rapid double-toggles would otherwise race the remote
// and desynchronize the projection.
var ErrPending = errors.New("syncer: mutation already in flight for this item")

// Item is an element of a synchronized collection.
type Item interface {
	Key() string
}

// RemoteOps is the remote side of a collection. Create returns the server
// echo of the item; implementations whose server returns nothing echo the
// input back.
type RemoteOps[T Item] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) (T, error)
	Delete(ctx context.Context, key string) error
}

// Collection is the local projection plus the machinery keeping it in
// step with the remote. Local mutation is mutex-guarded; remote calls run
// outside the lock so readers are never blocked on the network.
type Collection[T Item] struct {
	name string
	ops  RemoteOps[T]

	mu       sync.Mutex
	items    []T
	inflight map[string]struct{}
	// gen is bumped whenever the projection is reset (Load, Clear). A
	// response carrying a stale generation is discarded instead of
	// resurrecting pre-reset state.
	gen uint64
}

func New[T Item](name string, ops RemoteOps[T]) *Collection[T] {
	return &Collection[T]{
		name:     name,
		ops:      ops,
		inflight: make(map[string]struct{}),
	}
}

func (c *Collection[T]) begin(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[key]; busy {
		return errors.Wrap(ErrPending, c.name)
	}
	c.inflight[key] = struct{}{}
	return nil
}

func (c *Collection[T]) end(key string) {
	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()
}

// Load fetches the authoritative collection and replaces the projection
// wholesale. A Clear that lands while the fetch is in flight wins: the
// fetched snapshot is then stale and dropped.
func (c *Collection[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	fetched, err := c.ops.List(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		zap.L().Debug("discarding stale load", zap.String("collection", c.name))
		return nil
	}
	c.items = fetched
	return nil
}

// Add optimistically appends item, then issues the remote create. On
// failure only the appended item is undone: local state on other keys
// (quantity edits, a Load that finished mid-flight) is left alone. On
// success the placeholder is replaced by the server echo.
func (c *Collection[T]) Add(ctx context.Context, item T) error {
	key := item.Key()
	if err := c.begin(key); err != nil {
		return err
	}
	defer c.end(key)

	c.mu.Lock()
	gen := c.gen
	c.items = append(c.items, item)
	c.mu.Unlock()

	echo, err := c.ops.Create(ctx, item)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		// The projection was reset mid-flight; nothing to reconcile.
		return err
	}
	if err != nil {
		c.deleteLocked(key)
		zap.L().Warn("add rolled back",
			zap.String("collection", c.name),
			zap.String("key", key),
			zap.Error(err))
		return err
	}
	for i := range c.items {
		if c.items[i].Key() == key {
			c.items[i] = echo
		}
	}
	return nil
}

// Remove optimistically drops the item, then issues the remote delete.
// On failure the removed item alone is re-inserted at its old position;
// everything else in the projection keeps whatever happened to it while
// the delete was in flight.
func (c *Collection[T]) Remove(ctx context.Context, key string) error {
	if err := c.begin(key); err != nil {
		return err
	}
	defer c.end(key)

	c.mu.Lock()
	gen := c.gen
	var removed T
	idx := -1
	kept := c.items[:0:0]
	for i, it := range c.items {
		if it.Key() == key {
			removed, idx = it, i
			continue
		}
		kept = append(kept, it)
	}
	c.items = kept
	c.mu.Unlock()

	err := c.ops.Delete(ctx, key)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return err
	}
	if err != nil {
		// Skip the re-insert when a mid-flight Load already brought the
		// item back: the delete failed, so the server list still has it.
		if idx >= 0 && !c.containsLocked(key) {
			if idx > len(c.items) {
				idx = len(c.items)
			}
			c.items = append(c.items[:idx], append([]T{removed}, c.items[idx:]...)...)
		}
		zap.L().Warn("remove rolled back",
			zap.String("collection", c.name),
			zap.String("key", key),
			zap.Error(err))
		return err
	}
	return nil
}

// Toggle removes the item when its key is present in the local projection
// and adds it otherwise. Membership is checked locally, which is why the
// per-key in-flight guard exists.
func (c *Collection[T]) Toggle(ctx context.Context, item T) (added bool, err error) {
	if c.Contains(item.Key()) {
		return false, c.Remove(ctx, item.Key())
	}
	return true, c.Add(ctx, item)
}

// MutateLocal applies fn to the item with the given key, locally only.
// Used for cart quantity changes, which are not persisted until checkout.
func (c *Collection[T]) MutateLocal(key string, fn func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Key() == key {
			c.items[i] = fn(c.items[i])
			return true
		}
	}
	return false
}

// Clear empties the projection locally and invalidates responses still in
// flight. Used after a successful checkout and at logout.
func (c *Collection[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.gen++
}

// Items returns a copy of the projection.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Collection[T]) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.containsLocked(key)
}

func (c *Collection[T]) snapshotLocked() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) containsLocked(key string) bool {
	for _, it := range c.items {
		if it.Key() == key {
			return true
		}
	}
	return false
}

func (c *Collection[T]) deleteLocked(key string) {
	kept := c.items[:0:0]
	for _, it := range c.items {
		if it.Key() != key {
			kept = append(kept, it)
		}
	}
	c.items = kept
}
