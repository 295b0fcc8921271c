package gosparql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdfsql/gosparql/rdf"
	"github.com/rdfsql/gosparql/results"
)

func cachedResult(t *testing.T) *results.Materialized {
	m, err := results.NewMaterialized([]string{"x"}, []results.Row{{rdf.NewLiteral("a")}, {rdf.NewLiteral("b")}})
	require.NoError(t, err)
	return m
}

func TestResultCacheRefcount(t *testing.T) {
	id := "https://example.org/sparql?resultCacheSize=2"
	assert.Nil(t, acquireResultCache(id, 0, time.Hour))

	first := acquireResultCache(id, 2, time.Hour)
	second := acquireResultCache(id, 2, time.Hour)
	require.NotNil(t, first)
	assert.Same(t, first, second)

	releaseResultCache(first)
	globalResultCacheMu.Lock()
	_, found := globalResultCache[id]
	globalResultCacheMu.Unlock()
	assert.True(t, found)

	releaseResultCache(second)
	globalResultCacheMu.Lock()
	_, found = globalResultCache[id]
	globalResultCacheMu.Unlock()
	assert.False(t, found)

	releaseResultCache(nil)
}

func TestResultCacheLoadStore(t *testing.T) {
	cache := acquireResultCache(t.Name(), 2, time.Hour)
	defer releaseResultCache(cache)

	key := resultCacheKey("https://example.org/sparql", "SELECT * {}", results.MediaTypeJSON)
	_, ok := cache.load(key)
	assert.False(t, ok)

	stored := cachedResult(t)
	cache.store(key, stored)
	_, err := stored.Next()
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		m, ok := cache.load(key)
		require.True(t, ok)
		assert.Equal(t, 2, m.Len())
		row, err := m.Next()
		require.NoError(t, err)
		assert.Equal(t, results.Row{rdf.NewLiteral("a")}, row)
		m.Close()
	}

	other := resultCacheKey("https://example.org/sparql", "SELECT * {}", results.MediaTypeXML)
	assert.NotEqual(t, key, other)
	cache.store(other, cachedResult(t))
	cache.store(resultCacheKey("https://example.org/sparql", "ASK {}", results.MediaTypeJSON), cachedResult(t))
	assert.Equal(t, 2, cache.len())
	_, ok = cache.load(key)
	assert.False(t, ok, "least recently used entry is evicted")
}

func TestResultCacheExpiry(t *testing.T) {
	cache := acquireResultCache(t.Name(), 4, time.Millisecond)
	defer releaseResultCache(cache)

	key := resultCacheKey("https://example.org/sparql", "SELECT * {}", results.MediaTypeJSON)
	cache.store(key, cachedResult(t))
	time.Sleep(5 * time.Millisecond)
	_, ok := cache.load(key)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.len())
}

func TestNilResultCache(t *testing.T) {
	var cache *resultCache
	_, ok := cache.load(resultCacheKey("a", "b", "c"))
	assert.False(t, ok)
	cache.store(resultCacheKey("a", "b", "c"), cachedResult(t))
	assert.Equal(t, 0, cache.len())
}
