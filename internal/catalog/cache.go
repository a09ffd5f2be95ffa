// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/etagere/internal/platform/constants"
)

// Cache keeps raw search answers for a short time.
//
// A miss is reported as ok == false with a nil error. Errors are reserved for
// a cache that could not be reached; callers treat them as a miss.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// SearchKey identifies one catalog page: query, start index and page size.
func SearchKey(query string, startIndex, maxResults int) string {
	sum := sha1.Sum([]byte(query + "\x00" + strconv.Itoa(startIndex) + "\x00" + strconv.Itoa(maxResults)))
	return hex.EncodeToString(sum[:])
}

// # Redis

// RedisCache stores entries in Redis under [constants.RedisPrefixCatalogSearch].
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a [RedisCache].
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns the cached answer for key.
func (cache *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := cache.client.Get(ctx, constants.RedisPrefixCatalogSearch+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("catalog cache: get: %w", err)
	}
	return value, true, nil
}

// Set stores value for ttl.
func (cache *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := cache.client.Set(ctx, constants.RedisPrefixCatalogSearch+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("catalog cache: set: %w", err)
	}
	return nil
}

// # In-Process

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// sweepInterval is the minimum time between two full scans for expired entries.
const sweepInterval = time.Minute

// MemoryCache is the fallback when no Redis URL is configured.
// Expired entries are dropped when read, and swept from the whole map by Set
// at most once per [sweepInterval].
type MemoryCache struct {
	mutex   sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
	sweepAt time.Time
}

// NewMemoryCache creates an empty [MemoryCache].
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

// Get returns the live entry for key.
func (cache *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	entry, found := cache.entries[key]
	if !found {
		return nil, false, nil
	}
	if !cache.now().Before(entry.expiresAt) {
		delete(cache.entries, key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set stores value for ttl.
func (cache *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	now := cache.now()
	if !now.Before(cache.sweepAt) {
		for stored, entry := range cache.entries {
			if !now.Before(entry.expiresAt) {
				delete(cache.entries, stored)
			}
		}
		cache.sweepAt = now.Add(sweepInterval)
	}

	cache.entries[key] = memoryEntry{value: value, expiresAt: now.Add(ttl)}
	return nil
}

// Len returns the number of stored entries, expired or not.
func (cache *MemoryCache) Len() int {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()
	return len(cache.entries)
}

// SetClock replaces the time source. Used by tests.
func (cache *MemoryCache) SetClock(now func() time.Time) {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()
	cache.now = now
}
