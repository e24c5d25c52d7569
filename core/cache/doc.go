// Package cache provides a generic, thread-safe LRU cache.
//
//	c := cache.NewLRUCache[string, []byte](1000)
//	c.Put("key", value)
//	if v, ok := c.Get("key"); ok {
//		// ...
//	}
//
// Entries may carry an expiry through PutWithTTL. Expired entries are treated
// as missing and removed lazily on access.
//
// SetEvictCallback registers a function called for every entry removed because
// the cache was full or the entry expired. It runs while the cache lock is
// held and must not call back into the cache.
package cache
