package scorecache

import (
	"container/list"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/sigimsae/internal/domain/similarity"
)

// DefaultCapacity is the number of window scores kept before eviction starts.
const DefaultCapacity = 200

// Compile-time check: Cache implements similarity.Cache.
var _ similarity.Cache = (*Cache)(nil)

type key struct {
	needle   string
	haystack string
}

type entry struct {
	key   key
	score float64
}

// Cache is a bounded, thread-safe memo of window scores with FIFO eviction:
// once it holds more than capacity entries the oldest insert goes, and reads
// never move an entry.
type Cache struct {
	capacity int
	mu       sync.RWMutex
	items    map[key]*list.Element
	order    *list.List
	total    *prometheus.CounterVec
}

// New creates a cache holding at most capacity entries (DefaultCapacity if <= 0).
// total is a counter vec with label "result" ("hit"/"miss"); it can be nil.
func New(capacity int, total *prometheus.CounterVec) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		items:    make(map[key]*list.Element),
		order:    list.New(),
		total:    total,
	}
}

// Get returns the stored score for the pair.
func (c *Cache) Get(needle, haystack string) (float64, bool) {
	c.mu.RLock()
	elem, ok := c.items[key{needle: needle, haystack: haystack}]
	var score float64
	if ok {
		score = elem.Value.(*entry).score
	}
	c.mu.RUnlock()

	if ok {
		c.inc("hit")
	} else {
		c.inc("miss")
	}
	return score, ok
}

// Put stores a score. An existing pair keeps its original value and position.
func (c *Cache) Put(needle, haystack string, score float64) {
	k := key{needle: needle, haystack: haystack}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[k]; ok {
		return
	}
	c.items[k] = c.order.PushBack(&entry{key: k, score: score})

	if c.order.Len() > c.capacity {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*entry).key)
	}
}

// Len returns the number of cached pairs.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.order.Len()
}

// Capacity returns the configured bound.
func (c *Cache) Capacity() int { return c.capacity }

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[key]*list.Element)
	c.order = list.New()
}

func (c *Cache) inc(result string) {
	if c.total != nil {
		c.total.WithLabelValues(result).Inc()
	}
}
