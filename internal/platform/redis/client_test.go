// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/etagere/internal/platform/redis"
	"github.com/taibuivan/etagere/internal/platform/webtest"
)

/*
TestOpen connects to a live server and refuses a bad URL.
*/
func TestOpen(t *testing.T) {
	ctx := context.Background()
	server := miniredis.RunT(t)

	store, err := redis.Open(ctx, "redis://"+server.Addr(), webtest.Logger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Client().Set(ctx, "k", "v", 0).Err())
	assert.True(t, server.Exists("k"))

	_, err = redis.Open(ctx, "http://not-redis", webtest.Logger())
	assert.Error(t, err)
}

/*
TestStore_Check follows the server going away and coming back.
*/
func TestStore_Check(t *testing.T) {
	ctx := context.Background()
	server := miniredis.RunT(t)

	store, err := redis.Open(ctx, "redis://"+server.Addr(), webtest.Logger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	assert.NoError(t, store.Check(ctx))

	server.Close()
	assert.Error(t, store.Check(ctx))

	require.NoError(t, server.Restart())
	assert.NoError(t, store.Check(ctx))
}
