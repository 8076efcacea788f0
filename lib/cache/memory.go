package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache keeps up to size entries in process. maxAge bounds the
// lifetime of every entry on top of the ttl given to Set.
type MemoryCache struct {
	lru *expirable.LRU[string, memoryEntry]
}

func NewMemoryCache(size int, maxAge time.Duration) MemoryCache {
	return MemoryCache{
		lru: expirable.NewLRU[string, memoryEntry](size, nil, maxAge),
	}
}

func (c MemoryCache) Get(ctx context.Context, key string) (string, error) {
	entry, hit := c.lru.Get(key)
	if !hit {
		return "", ErrCacheMiss
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.lru.Remove(key)
		return "", ErrCacheMiss
	}
	return entry.value, nil
}

func (c MemoryCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	c.lru.Add(key, entry)
	return nil
}

func (c MemoryCache) Delete(ctx context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}
