package filecache

import (
	"os"
	"sync"
	"time"
)

// Entry is one cached file's content plus the mtime it was read at (§3
// FileCacheEntry).
type Entry struct {
	Content    []byte
	ModifiedAt time.Time
}

// Cache is a path-keyed, never-evicted store of file contents. Safe for
// concurrent use: every variant builds a single Cache at startup and shares
// it across all connections (the pool variant across worker goroutines);
// no variant builds a Cache per connection.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New constructs an empty cache. sizeHint seeds the map's initial bucket
// count from the config's CacheSize directive; it bounds nothing.
func New(sizeHint int) *Cache {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Cache{entries: make(map[string]Entry, sizeHint)}
}

// Get returns the cached entry for path, if present.
func (c *Cache) Get(path string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[path]
	return e, ok
}

// Load returns the cached entry for path, reading and caching it from disk
// on a miss. On a hit the entry is returned as first read: neither its
// content nor its ModifiedAt is re-read from disk (§9).
func (c *Cache) Load(path string) (Entry, error) {
	if e, ok := c.Get(path); ok {
		return e, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, err
	}
	e := Entry{Content: content, ModifiedAt: info.ModTime()}

	c.mu.Lock()
	c.entries[path] = e
	c.mu.Unlock()

	return e, nil
}

// IsFresh reports whether ifModifiedSince is at or after modifiedAt at
// second resolution, meaning a 304 should be returned instead of the body.
func IsFresh(modifiedAt, ifModifiedSince time.Time) bool {
	return !ifModifiedSince.Before(modifiedAt.Truncate(time.Second))
}
