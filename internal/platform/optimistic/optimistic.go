// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package optimistic applies a change locally before the server has confirmed it.

The sequence is always the same:

 1. snapshot the current state
 2. apply the speculative change
 3. commit it to the remote API
 4. on failure restore the snapshot, on success reconcile with the server's answer

The server's answer always wins over the speculative value.
*/
package optimistic

import "context"

// Apply runs the optimistic sequence on state.
//
// speculate receives a copy of the current state and must return the new
// state without mutating shared memory reachable from its argument (copy
// slices before editing them). reconcile merges the committed result into the
// speculative state.
//
// When commit fails, *state is exactly the snapshot taken before speculate
// ran, and the commit error is returned unchanged.
func Apply[T, R any](
	ctx context.Context,
	state *T,
	speculate func(T) T,
	commit func(context.Context) (R, error),
	reconcile func(T, R) T,
) (R, error) {
	snapshot := *state
	*state = speculate(snapshot)

	result, err := commit(ctx)
	if err != nil {
		*state = snapshot
		return result, err
	}

	*state = reconcile(*state, result)
	return result, nil
}
