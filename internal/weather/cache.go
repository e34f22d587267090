package weather

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/planora/eventcast/internal/observability"
)

// CacheConfig bounds the cache. Zero values mean unbounded and non-expiring,
// which keeps every payload for the life of the process.
type CacheConfig struct {
	MaxEntries int
	TTL        time.Duration
	Clock      clockwork.Clock
}

// CachedProvider memoizes successful raw payloads from an inner provider,
// keyed by (city, date). Failures are never cached, so a provider outage can
// be retried on the next lookup.
type CachedProvider struct {
	inner   Provider
	cfg     CacheConfig
	metrics *observability.Metrics

	mu      sync.Mutex
	entries map[string]*cacheEntry
	head    *cacheEntry // most recently used
	tail    *cacheEntry // least recently used
}

type cacheEntry struct {
	key       string
	payload   json.RawMessage
	fetchedAt time.Time
	prev      *cacheEntry
	next      *cacheEntry
}

// NewCachedProvider creates a cache decorator around a provider.
func NewCachedProvider(inner Provider, cfg CacheConfig, metrics *observability.Metrics) *CachedProvider {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return &CachedProvider{
		inner:   inner,
		cfg:     cfg,
		metrics: metrics,
		entries: make(map[string]*cacheEntry),
	}
}

func (c *CachedProvider) Name() string {
	return c.inner.Name()
}

// Current returns the memoized payload for (city, date) when present,
// otherwise it asks the inner provider and caches the result. Concurrent
// misses on the same key may both reach the provider; both store the same
// payload, so the race is benign.
func (c *CachedProvider) Current(ctx context.Context, city, date string) (json.RawMessage, error) {
	key := city + "|" + date

	if payload, ok := c.get(key); ok {
		c.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return payload, nil
	}
	c.metrics.CacheLookups.WithLabelValues("miss").Inc()

	payload, err := c.inner.Current(ctx, city, date)
	if err != nil {
		return nil, err
	}
	c.put(key, payload)
	return payload, nil
}

func (c *CachedProvider) get(key string) (json.RawMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.cfg.TTL > 0 && c.cfg.Clock.Since(e.fetchedAt) >= c.cfg.TTL {
		delete(c.entries, key)
		c.remove(e)
		c.metrics.CacheLookups.WithLabelValues("expired").Inc()
		return nil, false
	}
	c.moveToFront(e)
	return e.payload, true
}

func (c *CachedProvider) put(key string, payload json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.payload = payload
		e.fetchedAt = c.cfg.Clock.Now()
		c.moveToFront(e)
		return
	}

	e := &cacheEntry{key: key, payload: payload, fetchedAt: c.cfg.Clock.Now()}
	c.entries[key] = e
	c.addToFront(e)

	if c.cfg.MaxEntries > 0 && len(c.entries) > c.cfg.MaxEntries {
		c.evictTail()
	}
}

func (c *CachedProvider) moveToFront(e *cacheEntry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *CachedProvider) addToFront(e *cacheEntry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *CachedProvider) remove(e *cacheEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *CachedProvider) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
