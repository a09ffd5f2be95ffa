// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/etagere/pkg/pagination"
)

/*
TestParams_Offset verifies (page-1)*size for the first pages.
*/
func TestParams_Offset(t *testing.T) {
	tests := []struct {
		page, limit, want int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{3, 40, 80},
		{0, 20, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pagination.Params{Page: tt.page, Limit: tt.limit}.Offset())
	}
}

/*
TestSlice_NeverExceedsPageSize covers the client-side window.
*/
func TestSlice_NeverExceedsPageSize(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	page1 := pagination.Slice(items, pagination.Params{Page: 1, Limit: 20})
	page3 := pagination.Slice(items, pagination.Params{Page: 3, Limit: 20})
	page9 := pagination.Slice(items, pagination.Params{Page: 9, Limit: 20})

	assert.Len(t, page1, 20)
	assert.Equal(t, []int{40, 41, 42, 43, 44}, page3)
	assert.Empty(t, page9)
}

/*
TestFromQuery_HugePage keeps the offset non-negative for page numbers close
to the int range, and the local window empty instead of out of bounds.
*/
func TestFromQuery_HugePage(t *testing.T) {
	for _, raw := range []string{"9223372036854775807", "4611686018427387904", "230584300921369396"} {
		t.Run(raw, func(t *testing.T) {
			params := pagination.FromQuery(url.Values{"page": {raw}}, 20, 40)

			assert.GreaterOrEqual(t, params.Offset(), 0)
			assert.NotPanics(t, func() {
				assert.Empty(t, pagination.Slice([]int{1, 2, 3}, params))
			})
		})
	}
}

/*
TestParams_OffsetSaturates covers Params built without [pagination.New].
*/
func TestParams_OffsetSaturates(t *testing.T) {
	params := pagination.Params{Page: math.MaxInt, Limit: 40}
	assert.Equal(t, math.MaxInt, params.Offset())
	assert.Empty(t, pagination.Slice([]int{1, 2, 3}, params))

	assert.Empty(t, pagination.Slice([]int{1, 2, 3}, pagination.Params{Page: 1, Limit: -5}))
}

/*
TestNewMeta checks total pages and pager navigation.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 20, 45)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasPrev())
	assert.True(t, meta.HasNext())
	assert.Equal(t, 1, meta.PrevPage())
	assert.Equal(t, 3, meta.NextPage())

	empty := pagination.NewMeta(1, 20, 0)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext())
}

/*
TestFromQuery verifies parsing and clamping of query parameters.
*/
func TestFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  pagination.Params
	}{
		{"defaults", "", pagination.Params{Page: 1, Limit: 20}},
		{"explicit", "page=3&page_size=10", pagination.Params{Page: 3, Limit: 10}},
		{"negative_page", "page=-2", pagination.Params{Page: 1, Limit: 20}},
		{"garbage", "page=x&page_size=y", pagination.Params{Page: 1, Limit: 20}},
		{"clamped_size", "page_size=500", pagination.Params{Page: 1, Limit: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			assert.Equal(t, tt.want, pagination.FromQuery(values, 20, 40))
		})
	}
}
