// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package debounce coalesces bursts of calls that share a key.

Live search sends a request on every keystroke. Each request first waits on a
[Coalescer] under a key identifying the visitor's view; only the last request
of a burst (the trailing edge) gets through once the key has been quiet for
the configured delay. Earlier requests return [ErrSuperseded] at once.
*/
package debounce

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSuperseded is returned to a caller replaced by a newer call on the same key.
var ErrSuperseded = errors.New("debounce: superseded by a newer call")

// ticket is one waiting call.
type ticket struct {
	superseded chan struct{}
}

// Coalescer is a keyed trailing-edge debouncer. It is safe for concurrent use.
type Coalescer struct {
	mutex   sync.Mutex
	delay   time.Duration
	pending map[string]*ticket
}

// New creates a Coalescer with the given quiet period.
func New(delay time.Duration) *Coalescer {
	return &Coalescer{
		delay:   delay,
		pending: make(map[string]*ticket),
	}
}

// Delay returns the quiet period.
func (c *Coalescer) Delay() time.Duration {
	return c.delay
}

// Wait blocks until key has been quiet for the delay.
//
// It returns nil when the caller is the last of its burst, [ErrSuperseded]
// when a newer call with the same key arrived first, or ctx's error.
func (c *Coalescer) Wait(ctx context.Context, key string) error {
	if c.delay <= 0 {
		return ctx.Err()
	}

	own := &ticket{superseded: make(chan struct{})}

	c.mutex.Lock()
	if previous, exists := c.pending[key]; exists {
		close(previous.superseded)
	}
	c.pending[key] = own
	c.mutex.Unlock()

	timer := time.NewTimer(c.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		c.mutex.Lock()
		defer c.mutex.Unlock()

		// A newer call may have replaced us while the timer fired.
		if c.pending[key] != own {
			return ErrSuperseded
		}
		delete(c.pending, key)
		return nil

	case <-own.superseded:
		return ErrSuperseded

	case <-ctx.Done():
		c.release(key, own)
		return ctx.Err()
	}
}

// Pending returns the number of keys with a call in flight.
func (c *Coalescer) Pending() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.pending)
}

// release drops own from the map if it is still the latest call for key.
func (c *Coalescer) release(key string, own *ticket) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.pending[key] == own {
		delete(c.pending, key)
	}
}
