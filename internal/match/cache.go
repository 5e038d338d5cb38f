package match

import "sync"

type cacheKey struct {
	title  string
	author string
}

// Cache is a bounded in-memory store of resolved metadata keyed by
// (title, author). When full, the oldest insertion is evicted. At the
// scale it serves (tens of entries) no smarter policy is needed.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[cacheKey]Metadata
	order    []cacheKey
}

func NewCache(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[cacheKey]Metadata, capacity),
	}
}

func (c *Cache) Get(title, author string) (Metadata, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	meta, ok := c.entries[cacheKey{title, author}]
	return meta, ok
}

func (c *Cache) Put(title, author string, meta Metadata) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey{title, author}
	if _, exists := c.entries[key]; exists {
		c.entries[key] = meta
		return
	}

	if len(c.entries) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = meta
	c.order = append(c.order, key)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
