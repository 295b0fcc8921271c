package gosparql

import (
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
	"github.com/zeebo/xxh3"

	"github.com/rdfsql/gosparql/results"
)

// A reference counted cache of complete results. Connections opened from the
// same DSN share one cache, since database/sql opens and discards driver
// connections freely. The global table uses a native map and a lock; acquire
// and release are called once per connection.
type resultCache struct {
	id       string
	refcount int64
	ttl      time.Duration

	mu    sync.Mutex
	table *lru.Cache
}

// An entry in the result cache. Entries expire after the TTL so updates made
// to the store become visible.
type resultCacheEntry struct {
	created time.Time
	result  *results.Materialized
}

var (
	globalResultCacheMu = sync.Mutex{}
	globalResultCache   = map[string]*resultCache{}
)

func acquireResultCache(id string, size int, ttl time.Duration) *resultCache {
	if size <= 0 {
		return nil
	}
	globalResultCacheMu.Lock()
	defer globalResultCacheMu.Unlock()

	if cache, found := globalResultCache[id]; found {
		cache.refcount++
		return cache
	}
	cache := &resultCache{id: id, refcount: 1, ttl: ttl, table: lru.New(size)}
	globalResultCache[id] = cache
	return cache
}

func releaseResultCache(cache *resultCache) {
	if cache == nil {
		return
	}
	globalResultCacheMu.Lock()
	defer globalResultCacheMu.Unlock()

	cache.refcount--
	if cache.refcount <= 0 {
		delete(globalResultCache, cache.id)
	}
}

// resultCacheKey identifies a request by its endpoint, its text and the
// formats it accepts.
func resultCacheKey(endpoint, text, accept string) xxh3.Uint128 {
	h := xxh3.New()
	for _, s := range []string{endpoint, text, accept} {
		h.WriteString(s)
		h.Write([]byte{0})
	}
	return h.Sum128()
}

// load returns a fresh source over a cached result.
func (c *resultCache) load(key xxh3.Uint128) (*results.Materialized, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	val, ok := c.table.Get(key)
	if !ok {
		return nil, false
	}
	entry := val.(resultCacheEntry)
	if time.Since(entry.created) >= c.ttl {
		c.table.Remove(key)
		return nil, false
	}
	return entry.result.Reopen(), true
}

func (c *resultCache) store(key xxh3.Uint128, result *results.Materialized) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table.Add(key, resultCacheEntry{created: time.Now(), result: result.Reopen()})
}

func (c *resultCache) len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.Len()
}
