package upstream

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/relay/core/cache"
	"github.com/dmitrymomot/relay/core/forward"
	"github.com/dmitrymomot/relay/pkg/optional"
)

// Cache stores raw upstream response bodies.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache implements Cache on a go-redis client.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCache returns a Cache storing keys under prefix.
func NewRedisCache(client redis.UniversalClient, prefix string) *RedisCache {
	if prefix == "" {
		prefix = "relay:upstream:"
	}
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// MemoryCache implements Cache in process with LRU eviction.
type MemoryCache struct {
	lru *cache.LRUCache[string, []byte]
}

// NewMemoryCache returns a Cache holding at most capacity bodies.
func NewMemoryCache(capacity int) *MemoryCache {
	return &MemoryCache{lru: cache.NewLRUCache[string, []byte](capacity)}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.lru.Get(key)
	return v, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.lru.PutWithTTL(key, value, ttl)
	return nil
}

// CacheKey derives the cache key for path requested with cookie.
// Anonymous requests share one key space per path.
func CacheKey(path string, cookie optional.Option[forward.CookieConfig]) string {
	c, ok := cookie.Get()
	if !ok {
		return "anon:" + path
	}
	sum := sha256.Sum256([]byte(c.Cookie))
	return hex.EncodeToString(sum[:]) + ":" + path
}
