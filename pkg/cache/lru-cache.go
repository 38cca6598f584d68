package cache

import (
	"container/list"
	"sync"
	"time"

	"go.uber.org/zap"
)

const sweepInterval = 3 * time.Second

// LRUCache holds at most maxSize entries and drops the least recently used
// one to make room. Each entry carries its own deadline; expired entries
// are invisible to readers and removed by a periodic sweep.
type LRUCache struct {
	mu       sync.Mutex
	index    map[string]*list.Element
	order    *list.List // front = least recently used
	maxSize  int
	ttl      time.Duration
	now      func() time.Time
	stats    Stats
	done     chan struct{}
	stopOnce sync.Once
}

type lruEntry struct {
	key       string
	value     any
	expiresAt time.Time
}

func NewLRUCache(maxSize, defaultTtlSeconds int) *LRUCache {
	c := &LRUCache{
		index:   make(map[string]*list.Element),
		order:   list.New(),
		maxSize: maxSize,
		ttl:     time.Duration(defaultTtlSeconds) * time.Second,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go c.sweepLoop()
	return c
}

func (c *LRUCache) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := c.sweep(); n > 0 {
				zap.L().Debug("Expired cache entries removed", zap.Int("count", n))
			}
		case <-c.done:
			return
		}
	}
}

func (c *LRUCache) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for e := c.order.Front(); e != nil; {
		next := e.Next()
		if now.After(e.Value.(*lruEntry).expiresAt) {
			c.remove(e)
			removed++
		}
		e = next
	}
	c.stats.Expired += uint64(removed)
	return removed
}

// remove must be called with mu held.
func (c *LRUCache) remove(e *list.Element) {
	c.order.Remove(e)
	delete(c.index, e.Value.(*lruEntry).key)
}

// Stop is safe to call more than once.
func (c *LRUCache) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

func (c *LRUCache) Set(key string, value any) {
	c.SetWithTTL(key, value, int(c.ttl/time.Second))
}

func (c *LRUCache) SetWithTTL(key string, value any, ttlSeconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(time.Duration(ttlSeconds) * time.Second)

	if e, ok := c.index[key]; ok {
		entry := e.Value.(*lruEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		c.order.MoveToBack(e)
		return
	}

	for c.maxSize > 0 && c.order.Len() >= c.maxSize {
		oldest := c.order.Front()
		c.remove(oldest)
		c.stats.Evictions++
	}

	c.index[key] = c.order.PushBack(&lruEntry{key: key, value: value, expiresAt: expiresAt})
}

// Get promotes a live entry to most recently used.
func (c *LRUCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.index[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}

	entry := e.Value.(*lruEntry)
	if c.now().After(entry.expiresAt) {
		c.remove(e)
		c.stats.Expired++
		c.stats.Misses++
		return nil, false
	}

	c.order.MoveToBack(e)
	c.stats.Hits++
	return entry.value, true
}

func (c *LRUCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.index[key]; ok {
		c.remove(e)
	}
}

func (c *LRUCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *LRUCache) MaxSize() int {
	return c.maxSize
}

func (c *LRUCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Keys returns live keys, least recently used first.
func (c *LRUCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	keys := make([]string, 0, c.order.Len())
	for e := c.order.Front(); e != nil; e = e.Next() {
		if entry := e.Value.(*lruEntry); !now.After(entry.expiresAt) {
			keys = append(keys, entry.key)
		}
	}
	return keys
}
