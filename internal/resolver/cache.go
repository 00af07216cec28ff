package resolver

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-catalog/internal/identity"
)

// DefaultCacheTTL bounds how long a resolved view may be served without
// touching the store.
const DefaultCacheTTL = 30 * time.Minute

// Cache holds resolved views keyed by (slug, locale, field set) with a
// fixed TTL. Entries are evicted lazily on read; Invalidate drops every
// variant of one career so translation writes take effect immediately.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
	bySlug  map[string]map[string]struct{}
}

type cacheEntry struct {
	view      *ResolvedView
	expiresAt time.Time
}

// CacheOption configures the cache at construction time.
type CacheOption func(*Cache)

// WithCacheClock overrides the clock used for expiry checks.
func WithCacheClock(clock func() time.Time) CacheOption {
	return func(c *Cache) {
		if clock != nil {
			c.now = clock
		}
	}
}

// NewCache constructs a resolution cache. A non-positive ttl falls back to
// DefaultCacheTTL.
func NewCache(ttl time.Duration, opts ...CacheOption) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
		bySlug:  make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CacheKey derives the lookup key for one (slug, locale, field set)
// combination. The field list is hashed order-insensitively so callers
// naming the same fields in a different order share an entry.
func CacheKey(slug, locale string, fields []string) string {
	sorted := make([]string, len(fields))
	copy(sorted, fields)
	sort.Strings(sorted)
	fieldHash := identity.UUID("go-catalog:resolver_fields:" + strings.Join(sorted, ","))
	return slug + "|" + locale + "|" + fieldHash.String()
}

// Get returns the cached view for key when present and unexpired.
func (c *Cache) Get(slug, key string) (*ResolvedView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expiresAt) {
		c.dropLocked(slug, key)
		return nil, false
	}
	return entry.view.clone(), true
}

// Set stores a resolved view under key.
func (c *Cache) Set(slug, key string, view *ResolvedView) {
	if view == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		view:      view.clone(),
		expiresAt: c.now().Add(c.ttl),
	}
	keys, ok := c.bySlug[slug]
	if !ok {
		keys = make(map[string]struct{})
		c.bySlug[slug] = keys
	}
	keys[key] = struct{}{}
}

// Invalidate drops every cached variant of one career.
func (c *Cache) Invalidate(slug string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.bySlug[slug] {
		delete(c.entries, key)
	}
	delete(c.bySlug, slug)
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
	c.bySlug = make(map[string]map[string]struct{})
}

// Len reports the number of live entries. Expired entries still waiting for
// lazy eviction are counted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) dropLocked(slug, key string) {
	delete(c.entries, key)
	if keys, ok := c.bySlug[slug]; ok {
		delete(keys, key)
		if len(keys) == 0 {
			delete(c.bySlug, slug)
		}
	}
}
