// Package cache provides a small generic LRU with per-item TTL.
package cache

import (
	"container/list"
	"sync"
	"time"
)

type LRU[T any] struct {
	mu    sync.Mutex
	cap   int
	ttl   time.Duration
	index map[string]*list.Element
	ll    *list.List
}

type record[T any] struct {
	key     string
	value   T
	expires time.Time
}

// New creates an LRU holding at most capacity items, each expiring ttl
// after its last Set.
func New[T any](capacity int, ttl time.Duration) *LRU[T] {
	return &LRU[T]{
		cap:   capacity,
		ttl:   ttl,
		index: make(map[string]*list.Element),
		ll:    list.New(),
	}
}

func (c *LRU[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, ok := c.index[key]
	if !ok {
		return zero, false
	}

	rec := elem.Value.(*record[T])
	if time.Now().After(rec.expires) {
		c.remove(elem)
		return zero, false
	}

	c.ll.MoveToFront(elem)
	return rec.value, true
}

func (c *LRU[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec := &record[T]{key: key, value: value, expires: time.Now().Add(c.ttl)}

	if elem, ok := c.index[key]; ok {
		elem.Value = rec
		c.ll.MoveToFront(elem)
		return
	}

	c.index[key] = c.ll.PushFront(rec)

	if c.ll.Len() > c.cap {
		if oldest := c.ll.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
}

func (c *LRU[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.index[key]; ok {
		c.remove(elem)
	}
}

func (c *LRU[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Keys returns the keys of all live items, most recently used first.
func (c *LRU[T]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	keys := make([]string, 0, c.ll.Len())
	for elem := c.ll.Front(); elem != nil; elem = elem.Next() {
		rec := elem.Value.(*record[T])
		if now.After(rec.expires) {
			continue
		}
		keys = append(keys, rec.key)
	}
	return keys
}

func (c *LRU[T]) remove(elem *list.Element) {
	rec := elem.Value.(*record[T])
	delete(c.index, rec.key)
	c.ll.Remove(elem)
}
