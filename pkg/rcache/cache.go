package rcache

import (
	"container/list"
	"log/slog"
	"sync"
	"time"

	"github.com/vellum-ui/vellum/internal/errors"
)

// Cache is a bounded render cache. Entries expire after the configured TTL,
// and the cache enforces both an entry-count bound and a memory bound by
// evicting the least recently used entries (front = most recently used).
//
// All operations are safe for concurrent use. Check, evict and insert happen
// under one lock, so the bounds hold at every instant.
type Cache struct {
	mu sync.Mutex

	// Entries by key; element values are *entry.
	index map[string]*list.Element

	// LRU order (front = most recently used).
	queue *list.List

	memory int64

	config  Config
	logger  *slog.Logger
	metrics *Metrics

	hits      uint64
	misses    uint64
	evictions uint64

	// Clock; overrideable for tests.
	now func() time.Time

	done    chan struct{}
	stopped bool
}

type entry struct {
	key       string
	value     string
	size      int64
	expiresAt time.Time
}

// Config configures the render cache.
type Config struct {
	// MaxEntries is the maximum number of cached renders before LRU
	// eviction. Default: 128.
	MaxEntries int

	// MaxMemory is the memory bound in bytes, counting key and value
	// sizes. Default: 100 MB.
	MaxMemory int64

	// TTL is how long an entry remains valid. Default: 5 minutes.
	TTL time.Duration

	// CleanupInterval is how often expired entries are swept. Default:
	// 1 minute.
	CleanupInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxEntries:      128,
		MaxMemory:       100 << 20,
		TTL:             5 * time.Minute,
		CleanupInterval: 1 * time.Minute,
	}
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the cache's clock. Used by tests to control expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithMetrics attaches a metrics set to the cache.
func WithMetrics(m *Metrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// New creates a cache and starts its background sweep.
func New(config Config, logger *slog.Logger, opts ...Option) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	if config.MaxEntries <= 0 {
		config.MaxEntries = DefaultConfig().MaxEntries
	}
	if config.MaxMemory <= 0 {
		config.MaxMemory = DefaultConfig().MaxMemory
	}
	if config.TTL <= 0 {
		config.TTL = DefaultConfig().TTL
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = DefaultConfig().CleanupInterval
	}

	c := &Cache{
		index:  make(map[string]*list.Element),
		queue:  list.New(),
		config: config,
		logger: logger.With("component", "render_cache"),
		now:    time.Now,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.sweepLoop()

	return c
}

// Get returns the cached value for key. Expired entries count as misses and
// are removed on access.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		c.misses++
		c.metrics.miss()
		return "", false
	}

	ent := elem.Value.(*entry)
	if c.now().After(ent.expiresAt) {
		c.removeLocked(elem)
		c.misses++
		c.metrics.miss()
		return "", false
	}

	c.queue.MoveToFront(elem)
	c.hits++
	c.metrics.hit()
	return ent.value, true
}

// Set stores a value under key, evicting least recently used entries until
// both bounds hold. A value too large to ever fit is logged and skipped; the
// cache is a best-effort layer and never fails a render.
func (c *Cache) Set(key, value string) {
	size := int64(len(key) + len(value))

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}

	if size > c.config.MaxMemory {
		err := errors.New("E300").WithDetail(key)
		c.logger.Warn("value exceeds cache memory bound, skipping",
			"key", key,
			"size", size,
			"max_memory", c.config.MaxMemory,
			"error", err)
		return
	}

	if elem, ok := c.index[key]; ok {
		c.removeLocked(elem)
	}

	// Evict while over either bound, and opportunistically drop an expired
	// tail entry so dead weight goes before live entries do.
	now := c.now()
	for c.queue.Len() >= c.config.MaxEntries ||
		c.memory+size > c.config.MaxMemory ||
		c.expiredBackLocked(now) {
		if !c.evictOneLocked() {
			break
		}
	}

	ent := &entry{
		key:       key,
		value:     value,
		size:      size,
		expiresAt: c.now().Add(c.config.TTL),
	}
	c.index[key] = c.queue.PushFront(ent)
	c.memory += size
	c.metrics.observe(c.queue.Len(), c.memory)
}

// Delete removes the entry for key, if present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		c.removeLocked(elem)
	}
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.index = make(map[string]*list.Element)
	c.queue.Init()
	c.memory = 0
	c.metrics.observe(0, 0)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Len()
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Entries:   c.queue.Len(),
		Memory:    c.memory,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Entries   int
	Memory    int64
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Close stops the background sweep. The cache rejects writes afterwards;
// reads keep working so in-flight renders finish cleanly.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}
	c.stopped = true
	close(c.done)
}

// expiredBackLocked reports whether the least recently used entry is past
// its TTL. Must be called with the lock held.
func (c *Cache) expiredBackLocked(now time.Time) bool {
	back := c.queue.Back()
	if back == nil {
		return false
	}
	return now.After(back.Value.(*entry).expiresAt)
}

// evictOneLocked drops the least recently used entry. Must be called with
// the lock held.
func (c *Cache) evictOneLocked() bool {
	back := c.queue.Back()
	if back == nil {
		return false
	}
	ent := back.Value.(*entry)
	c.removeLocked(back)
	c.evictions++
	c.metrics.eviction()
	c.logger.Debug("evicted cache entry",
		"key", ent.key,
		"size", ent.size,
		"remaining", c.queue.Len())
	return true
}

// removeLocked removes an element from the queue, index and memory count.
// Must be called with the lock held.
func (c *Cache) removeLocked(elem *list.Element) {
	ent := elem.Value.(*entry)
	c.queue.Remove(elem)
	delete(c.index, ent.key)
	c.memory -= ent.size
	c.metrics.observe(c.queue.Len(), c.memory)
}

// sweepLoop periodically removes expired entries.
func (c *Cache) sweepLoop() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweepExpired()
		case <-c.done:
			return
		}
	}
}

// sweepExpired removes every entry past its TTL.
func (c *Cache) sweepExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}

	now := c.now()
	removed := 0
	for elem := c.queue.Back(); elem != nil; {
		prev := elem.Prev()
		if now.After(elem.Value.(*entry).expiresAt) {
			c.removeLocked(elem)
			removed++
		}
		elem = prev
	}

	if removed > 0 {
		c.logger.Debug("swept expired cache entries",
			"count", removed,
			"remaining", c.queue.Len())
	}
}
