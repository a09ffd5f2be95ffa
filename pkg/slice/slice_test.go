// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/etagere/pkg/slice"
)

/*
TestReplaceFirst verifies in-place replacement without mutating the input.
*/
func TestReplaceFirst(t *testing.T) {
	input := []int{1, 2, 3, 2}

	got, ok := slice.ReplaceFirst(input, func(v int) bool { return v == 2 }, 9)
	assert.True(t, ok)
	assert.Equal(t, []int{1, 9, 3, 2}, got)
	assert.Equal(t, []int{1, 2, 3, 2}, input)

	_, ok = slice.ReplaceFirst(input, func(v int) bool { return v == 7 }, 9)
	assert.False(t, ok)
}

/*
TestPrepend ensures the new element comes first.
*/
func TestPrepend(t *testing.T) {
	assert.Equal(t, []string{"c", "a", "b"}, slice.Prepend([]string{"a", "b"}, "c"))
	assert.Equal(t, []string{"x"}, slice.Prepend(nil, "x"))
}

/*
TestUniqueFold keeps the first spelling of each address.
*/
func TestUniqueFold(t *testing.T) {
	got := slice.UniqueFold([]string{"Lea@example.com", "lea@example.com", "marc@example.com"})
	assert.Equal(t, []string{"Lea@example.com", "marc@example.com"}, got)
}

/*
TestMapFilter covers the nil-preserving behaviour.
*/
func TestMapFilter(t *testing.T) {
	assert.Nil(t, slice.Map[int, int](nil, func(v int) int { return v }))
	assert.Equal(t, []int{2, 4}, slice.Map([]int{1, 2}, func(v int) int { return v * 2 }))
	assert.Equal(t, []int{2}, slice.Filter([]int{1, 2, 3}, func(v int) bool { return v%2 == 0 }))
}
