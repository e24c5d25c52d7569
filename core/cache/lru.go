package cache

import (
	"container/list"
	"sync"
	"time"
)

// LRUCache is a fixed-capacity cache evicting the least recently used entry.
type LRUCache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[K]*list.Element
	order    *list.List
	onEvict  func(K, V)
	now      func() time.Time
}

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// NewLRUCache creates a cache holding at most capacity entries.
// A capacity below 1 is treated as 1.
func NewLRUCache[K comparable, V any](capacity int) *LRUCache[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRUCache[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
		now:      time.Now,
	}
}

// SetEvictCallback sets the function called when an entry is evicted.
func (c *LRUCache[K, V]) SetEvictCallback(fn func(K, V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEvict = fn
}

// Get returns the value for key and marks it as recently used.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	e := el.Value.(*entry[K, V])
	if c.expired(e) {
		c.evict(el)
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	return e.value, true
}

// Put stores value under key without expiry.
func (c *LRUCache[K, V]) Put(key K, value V) {
	c.PutWithTTL(key, value, 0)
}

// PutWithTTL stores value under key for ttl. A ttl of zero never expires.
func (c *LRUCache[K, V]) PutWithTTL(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}

	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry[K, V])
		e.value = value
		e.expiresAt = expiresAt
		c.order.MoveToFront(el)
		return
	}

	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value, expiresAt: expiresAt})
	if c.order.Len() > c.capacity {
		c.evict(c.order.Back())
	}
}

// Remove deletes key and returns its value. The evict callback is not called.
func (c *LRUCache[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.Remove(el)
	delete(c.items, key)
	return el.Value.(*entry[K, V]).value, true
}

// Len returns the number of stored entries, including expired ones not yet
// removed.
func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear removes all entries without calling the evict callback.
func (c *LRUCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]*list.Element, c.capacity)
	c.order.Init()
}

func (c *LRUCache[K, V]) expired(e *entry[K, V]) bool {
	return !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt)
}

func (c *LRUCache[K, V]) evict(el *list.Element) {
	e := el.Value.(*entry[K, V])
	c.order.Remove(el)
	delete(c.items, e.key)
	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}
