package sbdb

import (
	"context"
	"sync"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
)

// CachedBodyLookup wraps a BodyLookup with an in-memory LRU cache.
type CachedBodyLookup struct {
	inner   domain.BodyLookup
	cache   *lruCache[string, domain.SmallBody]
	metrics *observability.Metrics
}

// NewCachedBodyLookup creates a cache decorator around a body lookup.
func NewCachedBodyLookup(inner domain.BodyLookup, maxEntries int, metrics *observability.Metrics) *CachedBodyLookup {
	return &CachedBodyLookup{
		inner:   inner,
		cache:   newLRUCache[string, domain.SmallBody](maxEntries),
		metrics: metrics,
	}
}

func (c *CachedBodyLookup) LookupBody(ctx context.Context, designation string) (domain.SmallBody, error) {
	if body, ok := c.cache.get(designation); ok {
		c.metrics.BodyCache.WithLabelValues("hit").Inc()
		return body, nil
	}
	c.metrics.BodyCache.WithLabelValues("miss").Inc()

	body, err := c.inner.LookupBody(ctx, designation)
	if err != nil {
		return body, err
	}
	// Unknown designations are not cached; the database catches up with new discoveries.
	if body.FullName != "" {
		c.cache.put(designation, body)
	}
	return body, nil
}

// lruCache is a thread-safe least-recently-used cache. Entries form a
// doubly linked list from most (head) to least (tail) recently used.
type lruCache[K comparable, V any] struct {
	capacity int
	mu       sync.Mutex
	index    map[K]*lruNode[K, V]
	head     *lruNode[K, V]
	tail     *lruNode[K, V]
}

type lruNode[K comparable, V any] struct {
	key        K
	value      V
	prev, next *lruNode[K, V]
}

func newLRUCache[K comparable, V any](capacity int) *lruCache[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &lruCache[K, V]{
		capacity: capacity,
		index:    make(map[K]*lruNode[K, V], capacity),
	}
}

func (c *lruCache[K, V]) get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.promote(n)
	return n.value, true
}

func (c *lruCache[K, V]) put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.index[key]; ok {
		n.value = value
		c.promote(n)
		return
	}

	n := &lruNode[K, V]{key: key, value: value}
	c.index[key] = n
	c.link(n)

	for len(c.index) > c.capacity {
		oldest := c.tail
		c.detach(oldest)
		delete(c.index, oldest.key)
	}
}

func (c *lruCache[K, V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// promote moves n to the head. Callers hold c.mu.
func (c *lruCache[K, V]) promote(n *lruNode[K, V]) {
	if c.head == n {
		return
	}
	c.detach(n)
	c.link(n)
}

// link inserts a detached node at the head.
func (c *lruCache[K, V]) link(n *lruNode[K, V]) {
	n.prev, n.next = nil, c.head
	if c.head != nil {
		c.head.prev = n
	} else {
		c.tail = n
	}
	c.head = n
}

func (c *lruCache[K, V]) detach(n *lruNode[K, V]) {
	if n.prev == nil {
		c.head = n.next
	} else {
		n.prev.next = n.next
	}
	if n.next == nil {
		c.tail = n.prev
	} else {
		n.next.prev = n.prev
	}
	n.prev, n.next = nil, nil
}
