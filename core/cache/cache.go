package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Namespace names used across the application. Each namespace carries its
// own default TTL so that fast-moving data (the catalog) expires sooner
// than expensive scans (the library listing).
const (
	NamespaceLibrary = "library"
	NamespaceCatalog = "catalog"
)

// DefaultTTLs returns the namespace TTL table used by the application.
func DefaultTTLs(librarySeconds, catalogSeconds int) map[string]time.Duration {
	return map[string]time.Duration{
		NamespaceLibrary: time.Duration(librarySeconds) * time.Second,
		NamespaceCatalog: time.Duration(catalogSeconds) * time.Second,
	}
}

type entry struct {
	value  any
	expiry time.Time
}

// Cache is a namespaced in-memory cache with per-namespace default TTLs.
//
// Expiry is checked lazily on read; an expired entry is removed by the read
// that discovers it. There is no background sweep and no size-based
// eviction: keys are few and stable (one per content root / catalog view).
// The single mutex only guards the map itself; slow value production must
// happen outside the lock (see Fetch).
type Cache struct {
	mu       sync.Mutex
	entries  map[string]entry
	defaults map[string]time.Duration
	sf       singleflight.Group
}

// New creates a cache with the given per-namespace default TTLs.
// Namespaces absent from the table fall back to 5 minutes.
func New(defaults map[string]time.Duration) *Cache {
	d := make(map[string]time.Duration, len(defaults))
	for ns, ttl := range defaults {
		d[ns] = ttl
	}
	return &Cache{
		entries:  make(map[string]entry),
		defaults: d,
	}
}

const fallbackTTL = 5 * time.Minute

func compositeKey(namespace, key string) string {
	return namespace + ":" + key
}

// Get returns the cached value for (namespace, key), or ok=false if the key
// is absent or expired. An expired entry is deleted on discovery.
func (c *Cache) Get(namespace, key string) (any, bool) {
	full := compositeKey(namespace, key)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, exists := c.entries[full]
	if !exists {
		return nil, false
	}
	if time.Now().After(e.expiry) {
		delete(c.entries, full)
		return nil, false
	}
	return e.value, true
}

// Set stores a value under (namespace, key). A non-positive ttl selects the
// namespace default.
func (c *Cache) Set(namespace, key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL(namespace)
	}
	full := compositeKey(namespace, key)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[full] = entry{value: value, expiry: time.Now().Add(ttl)}
}

// Delete removes a single entry by its full composite key ("namespace:key").
// It returns true if the key was present.
func (c *Cache) Delete(fullKey string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[fullKey]; exists {
		delete(c.entries, fullKey)
		return true
	}
	return false
}

// InvalidatePrefix removes every entry whose composite key starts with the
// given prefix and returns the number of entries removed.
func (c *Cache) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			count++
		}
	}
	return count
}

// Clear drops all cached values.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Fetch returns the cached value for (namespace, key), or invokes fill to
// produce it and caches the result under the namespace default TTL.
//
// The fill function runs outside the cache lock. Concurrent callers for the
// same key share a single fill via singleflight; distinct keys fill
// independently. A failed fill caches nothing, so the next caller retries.
func (c *Cache) Fetch(ctx context.Context, namespace, key string, fill func(ctx context.Context) (any, error)) (any, error) {
	if v, ok := c.Get(namespace, key); ok {
		return v, nil
	}

	full := compositeKey(namespace, key)
	v, err, _ := c.sf.Do(full, func() (any, error) {
		// Double-check after winning the flight; a sibling may have
		// populated the entry already.
		if v, ok := c.Get(namespace, key); ok {
			return v, nil
		}
		value, err := fill(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(namespace, key, value, 0)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c *Cache) defaultTTL(namespace string) time.Duration {
	if ttl, ok := c.defaults[namespace]; ok && ttl > 0 {
		return ttl
	}
	return fallbackTTL
}
