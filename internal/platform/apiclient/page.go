// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/pkg/pagination"
)

// Page is the one list shape every view works with.
type Page[T any] struct {
	Items []T
	Total int

	// Bare is true when the API answered with a plain array instead of an envelope.
	Bare bool
}

// envelope is the paginated shape of the remote API.
type envelope[T any] struct {
	Items      []T  `json:"items"`
	TotalItems *int `json:"total_items"`
	Total      *int `json:"total"`
}

// DecodePage normalises either response shape into a [Page].
//
// A bare array gives Total = len(array). An envelope gives total_items, then
// total, then len(items) as a last resort.
func DecodePage[T any](raw []byte) (Page[T], error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Page[T]{Items: []T{}}, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Page[T]{}, fmt.Errorf("apiclient: decode list: %w", err)
		}
		return Page[T]{Items: items, Total: len(items), Bare: true}, nil
	}

	var body envelope[T]
	if err := json.Unmarshal(trimmed, &body); err != nil {
		return Page[T]{}, fmt.Errorf("apiclient: decode page: %w", err)
	}

	if body.Items == nil {
		body.Items = []T{}
	}

	total := len(body.Items)
	switch {
	case body.TotalItems != nil:
		total = *body.TotalItems
	case body.Total != nil:
		total = *body.Total
	}

	return Page[T]{Items: body.Items, Total: total}, nil
}

// GetPage fetches a list endpoint and normalises the answer.
func GetPage[T any](ctx context.Context, client *Client, token, path string, query url.Values) (Page[T], error) {
	var raw json.RawMessage
	if err := client.Get(ctx, token, path, query, &raw); err != nil {
		return Page[T]{}, err
	}

	page, err := DecodePage[T](raw)
	if err != nil {
		return Page[T]{}, apperr.Upstream(http.StatusBadGateway, "Réponse du serveur illisible")
	}

	return page, nil
}

// Fit trims the page to the requested window.
//
// A bare array longer than the page size is taken as the whole collection and
// the window is cut locally. Otherwise the items are kept as returned, capped
// at the page size.
func (page Page[T]) Fit(params pagination.Params) Page[T] {
	if page.Bare && len(page.Items) > params.Limit {
		page.Items = pagination.Slice(page.Items, params)
		return page
	}

	if len(page.Items) > params.Limit {
		page.Items = page.Items[:params.Limit]
	}

	return page
}

// Meta returns the pager state of the page for the given params.
func (page Page[T]) Meta(params pagination.Params) pagination.Meta {
	return pagination.NewMeta(params.Page, params.Limit, page.Total)
}
