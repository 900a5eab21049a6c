package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Cache is a thread-safe in-process key-value store with per-entry TTL and tag
// based invalidation. It backs the stock summary cache as the first level.
type Cache struct {
	mu    sync.RWMutex
	items map[string]cacheItem
	// tag -> set of keys
	tags map[string]map[string]struct{}
	now  func() time.Time
}

type cacheItem struct {
	value     interface{}
	expiresAt time.Time // zero means no expiration
	tags      []string
}

var (
	once     sync.Once
	instance *Cache
)

// GetInstance returns the process-wide cache.
func GetInstance() *Cache {
	once.Do(func() {
		instance = NewCache()
	})
	return instance
}

func NewCache() *Cache {
	return &Cache{
		items: make(map[string]cacheItem),
		tags:  make(map[string]map[string]struct{}),
		now:   time.Now,
	}
}

// Set stores value under key. ttl is in seconds; 0 means no expiration.
func (c *Cache) Set(key string, value interface{}, ttl int64, tags []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteLocked(key)
	item := cacheItem{value: value, tags: tags}
	if ttl > 0 {
		item.expiresAt = c.now().Add(time.Duration(ttl) * time.Second)
	}
	c.items[key] = item
	for _, tag := range tags {
		keys, ok := c.tags[tag]
		if !ok {
			keys = make(map[string]struct{})
			c.tags[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

// Get returns (value, true) if key is present and not expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !item.expiresAt.IsZero() && c.now().After(item.expiresAt) {
		c.Delete(key)
		return nil, false
	}
	return item.value, true
}

// Delete removes key and its tag memberships.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	c.deleteLocked(key)
	c.mu.Unlock()
}

func (c *Cache) deleteLocked(key string) {
	item, ok := c.items[key]
	if !ok {
		return
	}
	for _, tag := range item.tags {
		if keys, ok := c.tags[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.tags, tag)
			}
		}
	}
	delete(c.items, key)
}

// Key joins parts into a composite key.
func Key(parts ...interface{}) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = fmt.Sprintf("%v", p)
	}
	return strings.Join(s, ":")
}

// DeleteByTag deletes every entry carrying tag and returns how many were removed.
func (c *Cache) DeleteByTag(tag string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := c.tags[tag]
	n := 0
	for k := range keys {
		c.deleteLocked(k)
		n++
	}
	delete(c.tags, tag)
	return n
}
