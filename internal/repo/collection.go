package repo

import (
	"errors"
	"strconv"
	"sync"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

// Collection is an ordered, append-only record set with soft integer-sequence
// identifiers normalized to strings. One mutex guards the whole kind, so
// read-modify-write sequences never interleave with a concurrent mutation.
type Collection[T any] struct {
	mu    sync.Mutex
	seq   int64
	order []string
	items map[string]T
}

func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{items: make(map[string]T)}
}

// NextID allocates the next identifier. Ids are never reused, even after the
// record they were minted for is removed.
func (c *Collection[T]) NextID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return strconv.FormatInt(c.seq, 10)
}

func (c *Collection[T]) Insert(id string, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	c.items[id] = item
}

// All returns every record in insertion order.
func (c *Collection[T]) All() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

func (c *Collection[T]) FindByID(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[id]
	return item, ok
}

// Find returns the records matching pred, in insertion order.
func (c *Collection[T]) Find(pred func(T) bool) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []T
	for _, id := range c.order {
		if item := c.items[id]; pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Mutate applies fn to the record stored under id and stores the result,
// keeping its position. The whole read-modify-write runs under the collection
// lock, so two concurrent mutations of the same record serialize instead of
// overwriting each other. fn returning an error aborts the write; the second
// return value reports whether the id exists.
func (c *Collection[T]) Mutate(id string, fn func(T) (T, error)) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false, nil
	}
	updated, err := fn(item)
	if err != nil {
		var zero T
		return zero, true, err
	}
	c.items[id] = updated
	return updated, true, nil
}

func (c *Collection[T]) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, stored := range c.order {
		if stored == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}
