// Package syncer keeps a local, ordered copy of a server-owned collection
// and applies server-confirmed results to it.
//
// Every operation reserves a sequence number before it talks to the
// server. A result is applied for an id only when its sequence is not
// older than the last one applied for that id, so responses that arrive
// out of order cannot roll an item back. A fetch that started before a
// newer per-id change keeps the newer local version, and a fetch older
// than the last applied fetch is dropped. Confirmed deletes are terminal.
//
// Without racing requests the behavior is plain: FetchAll fully replaces
// the collection in server order, Create prepends the server's object,
// Update replaces by id with the server's object, Delete removes by id.
// Nothing is applied when the server call fails.
package syncer

import (
	"context"
	"sort"
	"sync"
)

// Seq orders operations on a collection. Zero is never issued.
type Seq uint64

type version struct {
	seq     Seq
	removed bool
}

// Collection is a locally held, server-synced list of T keyed by K.
// It is safe for concurrent use. Items are stored by value; a T holding
// slices or maps must be treated as immutable once handed over.
type Collection[K comparable, T any] struct {
	mu        sync.Mutex
	key       func(T) K
	items     []T
	seq       Seq
	lastFetch Seq
	floor     Seq
	versions  map[K]version
}

// New returns an empty collection that identifies items with key.
func New[K comparable, T any](key func(T) K) *Collection[K, T] {
	return &Collection[K, T]{key: key, versions: make(map[K]version)}
}

// Next reserves a sequence number for an operation about to start.
func (c *Collection[K, T]) Next() Seq {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// FetchAll loads the whole collection with fetch and replaces the local
// copy with it. On error the local copy is untouched.
func (c *Collection[K, T]) FetchAll(ctx context.Context, fetch func(ctx context.Context) ([]T, error)) error {
	seq := c.Next()
	items, err := fetch(ctx)
	if err != nil {
		return err
	}
	c.ApplyFetch(seq, items)
	return nil
}

// Create runs create and prepends the returned object.
func (c *Collection[K, T]) Create(ctx context.Context, create func(ctx context.Context) (T, error)) (T, error) {
	seq := c.Next()
	item, err := create(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.Prepend(seq, item)
	return item, nil
}

// Update runs update and replaces the item with the same id by the
// returned object.
func (c *Collection[K, T]) Update(ctx context.Context, update func(ctx context.Context) (T, error)) (T, error) {
	seq := c.Next()
	item, err := update(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.Put(seq, item)
	return item, nil
}

// Delete runs del and removes id once the server has confirmed it.
func (c *Collection[K, T]) Delete(ctx context.Context, id K, del func(ctx context.Context) error) error {
	seq := c.Next()
	if err := del(ctx); err != nil {
		return err
	}
	c.Remove(seq, id)
	return nil
}

// ApplyFetch replaces the collection with items fetched by the operation
// seq. It reports false when a newer fetch has already been applied.
func (c *Collection[K, T]) ApplyFetch(seq Seq, items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq < c.lastFetch || seq <= c.floor {
		return false
	}
	c.lastFetch = seq

	current := make(map[K]T, len(c.items))
	for _, it := range c.items {
		current[c.key(it)] = it
	}

	result := make([]T, 0, len(items))
	seen := make(map[K]struct{}, len(items))
	for _, it := range items {
		k := c.key(it)
		if _, dup := seen[k]; dup {
			continue
		}
		if v, ok := c.versions[k]; ok && v.seq > seq {
			if v.removed {
				continue
			}
			if local, ok := current[k]; ok {
				it = local
			}
		} else if !v.removed {
			c.versions[k] = version{seq: seq}
		} else {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, it)
	}

	// Items created after this fetch started are not in its response.
	var fresh []T
	for _, it := range c.items {
		k := c.key(it)
		if _, ok := seen[k]; ok {
			continue
		}
		if v, ok := c.versions[k]; ok && v.seq > seq && !v.removed {
			fresh = append(fresh, it)
		}
	}

	c.items = append(fresh, result...)
	return true
}

// Prepend inserts item at the front, or replaces it in place when the id
// is already present.
func (c *Collection[K, T]) Prepend(seq Seq, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := c.key(item)
	if !c.acceptLocked(k, seq) {
		return false
	}
	c.versions[k] = version{seq: seq}

	if i := c.indexLocked(k); i >= 0 {
		c.items[i] = item
		return true
	}
	c.items = append([]T{item}, c.items...)
	return true
}

// Put replaces the item with the same id. Unknown ids are ignored.
func (c *Collection[K, T]) Put(seq Seq, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := c.key(item)
	i := c.indexLocked(k)
	if i < 0 || !c.acceptLocked(k, seq) {
		return false
	}
	c.versions[k] = version{seq: seq}
	c.items[i] = item
	return true
}

// Mutate replaces the current version of id with fn's result. fn receives
// the stored value and must not modify shared backing data in place.
func (c *Collection[K, T]) Mutate(seq Seq, id K, fn func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexLocked(id)
	if i < 0 || !c.acceptLocked(id, seq) {
		return false
	}
	c.versions[id] = version{seq: seq}
	c.items[i] = fn(c.items[i])
	return true
}

// Remove deletes id. A confirmed removal wins over any later response for
// the same id.
func (c *Collection[K, T]) Remove(seq Seq, id K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq <= c.floor {
		return false
	}
	v := c.versions[id]
	if seq > v.seq {
		v.seq = seq
	}
	v.removed = true
	c.versions[id] = v

	i := c.indexLocked(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	return true
}

// Current reports whether seq is still the latest change applied to id.
func (c *Collection[K, T]) Current(id K, seq Seq) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.versions[id]
	return ok && !v.removed && v.seq == seq
}

// Clear drops every item and all version history. Results of operations
// started before Clear are ignored.
func (c *Collection[K, T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.floor = c.seq
	c.versions = make(map[K]version)
}

// Items returns a copy of the collection in its current order.
func (c *Collection[K, T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

func (c *Collection[K, T]) Get(id K) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexLocked(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

func (c *Collection[K, T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// SortedBy returns a sorted copy; the collection order is not changed.
func (c *Collection[K, T]) SortedBy(less func(a, b T) bool) []T {
	out := c.Items()
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (c *Collection[K, T]) acceptLocked(id K, seq Seq) bool {
	if seq <= c.floor {
		return false
	}
	v, ok := c.versions[id]
	if !ok {
		return true
	}
	return !v.removed && seq >= v.seq
}

func (c *Collection[K, T]) indexLocked(id K) int {
	for i, it := range c.items {
		if c.key(it) == id {
			return i
		}
	}
	return -1
}
