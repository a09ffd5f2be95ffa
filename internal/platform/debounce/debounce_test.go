// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package debounce_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/etagere/internal/platform/debounce"
)

/*
TestCoalescer_OnlyLastCallPasses fires a burst and expects exactly one winner.
*/
func TestCoalescer_OnlyLastCallPasses(t *testing.T) {
	coalescer := debounce.New(40 * time.Millisecond)

	results := make([]error, 5)
	var wg sync.WaitGroup

	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = coalescer.Wait(context.Background(), "library:u1")
		}(i)
		time.Sleep(5 * time.Millisecond)
	}
	wg.Wait()

	passed := 0
	for i, err := range results {
		if err == nil {
			passed++
			assert.Equal(t, len(results)-1, i, "the trailing call should win")
			continue
		}
		assert.ErrorIs(t, err, debounce.ErrSuperseded)
	}

	assert.Equal(t, 1, passed)
	assert.Zero(t, coalescer.Pending())
}

/*
TestCoalescer_KeysAreIndependent ensures two views do not cancel each other.
*/
func TestCoalescer_KeysAreIndependent(t *testing.T) {
	coalescer := debounce.New(10 * time.Millisecond)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, key := range []string{"a", "b"} {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			errs[i] = coalescer.Wait(context.Background(), key)
		}(i, key)
	}
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
}

/*
TestCoalescer_ContextCancelled releases the key when the caller leaves.
*/
func TestCoalescer_ContextCancelled(t *testing.T) {
	coalescer := debounce.New(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := coalescer.Wait(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, coalescer.Pending())
}

/*
TestCoalescer_ZeroDelay passes straight through.
*/
func TestCoalescer_ZeroDelay(t *testing.T) {
	assert.NoError(t, debounce.New(0).Wait(context.Background(), "k"))
}
