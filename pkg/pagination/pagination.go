// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for paged list views.
//
// # Overview
//
// It standardizes how page-based navigation is read from query parameters,
// how the remote offset is derived, and how the pager shown under a list is
// computed. Pages are 1-indexed everywhere.
package pagination

import (
	"math"
	"net/url"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the page and page size of a list view.
type Params struct {
	Page  int
	Limit int
}

// New returns Params with out-of-range values clamped.
func New(page, limit, maxLimit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if maxLimit < 1 {
		maxLimit = MaxLimit
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	// (page-1)*limit must fit in an int.
	page = min(page, math.MaxInt/maxLimit)
	return Params{Page: page, Limit: limit}
}

// Offset returns the zero-based index of the first item of the page: (page-1)*size.
// It saturates at [math.MaxInt] instead of overflowing.
func (p Params) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Window returns the [start, end) bounds of the page inside a list of n items.
// Both bounds stay within [0, n], so the window is empty past the last page.
func (p Params) Window(n int) (start, end int) {
	start = min(max(p.Offset(), 0), n)
	end = start + min(max(p.Limit, 0), n-start)
	return start, end
}

// Slice returns the items of the page when the whole list is held locally.
func Slice[T any](items []T, p Params) []T {
	start, end := p.Window(len(items))
	return items[start:end]
}

// Meta is the pager state rendered under a list.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a list.
//
// TotalPages is never below 1 so an empty list still shows "page 1 of 1".
func NewMeta(page, limit, total int) Meta {
	totalPages := 1
	if limit > 0 && total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// HasPrev reports whether a previous page exists.
func (m Meta) HasPrev() bool { return m.Page > 1 }

// HasNext reports whether a next page exists.
func (m Meta) HasNext() bool { return m.Page < m.TotalPages }

// PrevPage returns the previous page number (never below 1).
func (m Meta) PrevPage() int { return max(m.Page-1, 1) }

// NextPage returns the next page number (never past the last page).
func (m Meta) NextPage() int { return min(m.Page+1, m.TotalPages) }

// FromQuery parses "page" and "page_size" from query values.
//
// # Clamping
//
// Invalid or negative values fall back to [DefaultPage] and defaultLimit;
// sizes above maxLimit are clamped to it.
func FromQuery(values url.Values, defaultLimit, maxLimit int) Params {
	page := parseIntParam(values, "page", DefaultPage)
	limit := parseIntParam(values, "page_size", defaultLimit)
	return New(page, limit, maxLimit)
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(values url.Values, key string, defaultVal int) int {
	raw := values.Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
