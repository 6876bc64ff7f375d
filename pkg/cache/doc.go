// Package cache provides small in-process caches.
//
// LRU is a generic, thread-safe, size-bounded cache with optional per-entry
// TTL. Expired entries are dropped lazily when they are read, and the least
// recently used entry is evicted once the capacity is exceeded.
//
//	c, err := cache.NewLRU[string, *bluemonday.Policy](64)
//	if err != nil {
//		return err
//	}
//	c.Set("default", policy, 0)
//	p, ok := c.Get("default")
//
// MemoryStore wraps an LRU of strings behind the context-aware Get/Set
// contract shared with the Redis-backed store in pkg/redis, so the renderer
// can use either one as its output cache:
//
//	store, _ := cache.NewMemoryStore(1024)
//	_ = store.Set(ctx, key, html, 10*time.Minute)
//	html, ok, err := store.Get(ctx, key)
//
// Tests can freeze time with SetClock.
package cache
