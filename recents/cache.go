package recents

import (
	"sync"
	"time"
)

// metaCache avoids re-reading unchanged session files on every refresh.
// The cache key is (path, modTime) -- when a file's modification time
// changes, its meta line is re-read. Untouched files return cached meta
// immediately. The mutex makes the cache safe to share between the watcher
// goroutine's scans and scans issued from the UI side.
type metaCache struct {
	mu      sync.Mutex
	entries map[string]cachedMeta
}

type cachedMeta struct {
	modTime time.Time
	meta    metaRecord
	ok      bool
}

func newMetaCache() *metaCache {
	return &metaCache{entries: make(map[string]cachedMeta)}
}

// getOrRead returns cached meta when the file hasn't changed (same
// modTime), otherwise re-reads and updates the cache. Files that fail to
// parse are cached as not-a-session so they aren't re-read every scan.
func (c *metaCache) getOrRead(path string, modTime time.Time) (metaRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.entries[path]; ok && cached.modTime.Equal(modTime) {
		return cached.meta, cached.ok
	}

	meta, err := readMeta(path)
	entry := cachedMeta{modTime: modTime, meta: meta, ok: err == nil}
	c.entries[path] = entry
	return entry.meta, entry.ok
}
