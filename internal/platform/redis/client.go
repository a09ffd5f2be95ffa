// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis holds the optional shared cache of the web front-end.

Only catalog search pages live there, each under a TTL. A [Store] is opened
once at startup from REDIS_URL; the readiness probe and shutdown go through it
so that the cache reports its own state in the logs.
*/
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout  = 2 * time.Second
	ioTimeout    = 500 * time.Millisecond
	checkTimeout = time.Second
	poolSize     = 8
)

// Store is the connected cache.
type Store struct {
	client *redis.Client
	addr   string
	log    *slog.Logger

	// healthy remembers the last check so only transitions are logged.
	healthy atomic.Bool
}

// Open connects to redisURL and fails when the server does not answer.
func Open(ctx context.Context, redisURL string, log *slog.Logger) (*Store, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	options.PoolSize = poolSize
	options.DialTimeout = dialTimeout
	options.ReadTimeout = ioTimeout
	options.WriteTimeout = ioTimeout

	store := &Store{
		client: redis.NewClient(options),
		addr:   options.Addr,
		log:    log.With(slog.String("cache_addr", options.Addr)),
	}

	if err := store.Check(ctx); err != nil {
		return nil, errors.Join(err, store.client.Close())
	}

	store.log.Info("catalog_cache_redis")
	return store, nil
}

// Client exposes the connection to the cache implementations.
func (store *Store) Client() *redis.Client { return store.client }

// Check pings the server within a short deadline. It logs when the cache
// goes down or comes back, not on every probe.
func (store *Store) Check(ctx context.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	err := store.client.Ping(checkCtx).Err()
	if was := store.healthy.Swap(err == nil); was != (err == nil) {
		if err != nil {
			store.log.Warn("catalog_cache_unreachable", slog.Any("error", err))
		} else {
			store.log.Info("catalog_cache_reachable")
		}
	}

	if err != nil {
		return fmt.Errorf("redis: ping %s: %w", store.addr, err)
	}
	return nil
}

// Close releases the pool.
func (store *Store) Close() error {
	store.log.Info("closing_catalog_cache")
	return store.client.Close()
}
