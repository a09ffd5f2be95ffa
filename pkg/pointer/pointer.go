// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides a generic helper for optional values.

PATCH payloads sent to the remote API use pointer fields so that only the
fields being changed are serialized.
*/
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}
