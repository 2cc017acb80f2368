package services

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 24 * time.Hour

// RedisCache backs SettingsCache with redis. Errors are swallowed into cache
// misses so a redis outage degrades to store reads instead of failures.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(key string) (string, bool) {
	result := c.client.Get(context.Background(), key)
	if result.Err() != nil {
		return "", false
	}
	return result.Val(), true
}

func (c *RedisCache) Set(key, value string) {
	c.client.Set(context.Background(), key, value, cacheTTL)
}

func (c *RedisCache) Delete(key string) {
	c.client.Del(context.Background(), key)
}

// MemoryCache is the fallback when redis is not reachable, and the cache
// used in tests.
type MemoryCache struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{values: make(map[string]string)}
}

func (c *MemoryCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.values[key]
	return value, ok
}

func (c *MemoryCache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

func (c *MemoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
}
