package ephemeris

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/vedavox/panchangam/observability"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"go.opentelemetry.io/otel/attribute"
)

// Cache defines the interface for ephemeris data caching.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration)
	Delete(ctx context.Context, key string) bool
	Clear(ctx context.Context) error
	GetStats(ctx context.Context) *CacheStats
	Close() error
}

// CacheStats represents cache statistics.
type CacheStats struct {
	Hits           int64         `json:"hits"`
	Misses         int64         `json:"misses"`
	Entries        int64         `json:"entries"`
	HitRate        float64       `json:"hit_rate"`
	AverageLatency time.Duration `json:"average_latency"`
}

// MemoryCache implements an in-memory, TTL-bounded cache on top of
// hashicorp's expirable LRU, with observability span instrumentation
// around Get, Set, Delete and Clear. Since solar/lunar series are pure functions of
// Julian day, a bounded LRU is sufficient: there is no invalidation
// concern beyond eviction.
type MemoryCache struct {
	data     *lru.LRU[string, interface{}]
	observer observability.ObserverInterface

	hits, misses int64
	avgLatencyNs int64
}

// NewMemoryCache creates a new in-memory cache with the given maximum
// number of entries and default TTL.
func NewMemoryCache(maxSize int, defaultTTL time.Duration) *MemoryCache {
	return &MemoryCache{
		data:     lru.NewLRU[string, interface{}](maxSize, nil, defaultTTL),
		observer: observability.Observer(),
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (interface{}, bool) {
	_, span := c.observer.CreateSpan(ctx, "ephemeris.cache.Get")
	defer span.End()
	span.SetAttributes(attribute.String("cache_key", key))

	start := time.Now()
	value, found := c.data.Get(key)
	latency := time.Since(start)
	c.updateAverageLatency(latency)

	if !found {
		atomic.AddInt64(&c.misses, 1)
		span.SetAttributes(attribute.Bool("cache_hit", false))
		return nil, false
	}

	atomic.AddInt64(&c.hits, 1)
	span.SetAttributes(attribute.Bool("cache_hit", true))
	return value, true
}

func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	_, span := c.observer.CreateSpan(ctx, "ephemeris.cache.Set")
	defer span.End()
	span.SetAttributes(attribute.String("cache_key", key))

	if ttl > 0 {
		c.data.Add(key, value)
	} else {
		c.data.Add(key, value)
	}
	span.AddEvent("cache entry stored")
}

func (c *MemoryCache) Delete(ctx context.Context, key string) bool {
	_, span := c.observer.CreateSpan(ctx, "ephemeris.cache.Delete")
	defer span.End()
	removed := c.data.Remove(key)
	span.SetAttributes(attribute.Bool("found", removed))
	return removed
}

func (c *MemoryCache) Clear(ctx context.Context) error {
	_, span := c.observer.CreateSpan(ctx, "ephemeris.cache.Clear")
	defer span.End()
	c.data.Purge()
	span.AddEvent("cache cleared")
	return nil
}

func (c *MemoryCache) GetStats(ctx context.Context) *CacheStats {
	hits := atomic.LoadInt64(&c.hits)
	misses := atomic.LoadInt64(&c.misses)
	stats := &CacheStats{
		Hits:           hits,
		Misses:         misses,
		Entries:        int64(c.data.Len()),
		AverageLatency: time.Duration(atomic.LoadInt64(&c.avgLatencyNs)),
	}
	if total := hits + misses; total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}
	return stats
}

func (c *MemoryCache) Close() error {
	c.data.Purge()
	return nil
}

func (c *MemoryCache) updateAverageLatency(latency time.Duration) {
	const alpha = 0.1
	for {
		old := atomic.LoadInt64(&c.avgLatencyNs)
		var next int64
		if old == 0 {
			next = int64(latency)
		} else {
			next = int64(float64(old)*(1-alpha) + float64(latency)*alpha)
		}
		if atomic.CompareAndSwapInt64(&c.avgLatencyNs, old, next) {
			return
		}
	}
}

// NoOpCache is a cache that doesn't cache anything, used where
// determinism under test matters more than throughput.
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache.
func NewNoOpCache() *NoOpCache { return &NoOpCache{} }

func (c *NoOpCache) Get(ctx context.Context, key string) (interface{}, bool) { return nil, false }
func (c *NoOpCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {}
func (c *NoOpCache) Delete(ctx context.Context, key string) bool                                { return false }
func (c *NoOpCache) Clear(ctx context.Context) error                                             { return nil }
func (c *NoOpCache) GetStats(ctx context.Context) *CacheStats                                    { return &CacheStats{} }
func (c *NoOpCache) Close() error                                                                { return nil }
