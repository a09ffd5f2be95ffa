// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/taibuivan/etagere/internal/platform/apiclient"
)

// Gateway defines the catalog endpoints of the remote API.
type Gateway interface {
	// Search returns the raw answer of the catalog proxy, in either list shape.
	Search(ctx context.Context, token, query string, startIndex, maxResults int) (json.RawMessage, error)

	// LibraryExternalIDs lists the catalog IDs already in the user's library.
	LibraryExternalIDs(ctx context.Context, token string) ([]string, error)

	// Add creates a library entry.
	//
	// Returns [apperr.Conflict] when the entry already exists.
	Add(ctx context.Context, token string, book NewBook) error
}

// RemoteGateway implements [Gateway] over the remote REST API.
type RemoteGateway struct {
	client *apiclient.Client
}

// NewRemoteGateway creates a [RemoteGateway].
func NewRemoteGateway(client *apiclient.Client) *RemoteGateway {
	return &RemoteGateway{client: client}
}

// Search calls GET /google/search.
func (gateway *RemoteGateway) Search(ctx context.Context, token, query string, startIndex, maxResults int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("start_index", strconv.Itoa(startIndex))
	params.Set("max_results", strconv.Itoa(maxResults))

	var raw json.RawMessage
	if err := gateway.client.Get(ctx, token, "/google/search", params, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// libraryEntry is the subset of a book needed to mark search results.
type libraryEntry struct {
	ExternalID *string `json:"external_id"`
}

// LibraryExternalIDs calls GET /books/.
func (gateway *RemoteGateway) LibraryExternalIDs(ctx context.Context, token string) ([]string, error) {
	var entries []libraryEntry
	if err := gateway.client.Get(ctx, token, "/books/", nil, &entries); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.ExternalID != nil && *entry.ExternalID != "" {
			ids = append(ids, *entry.ExternalID)
		}
	}
	return ids, nil
}

// Add calls POST /books/.
func (gateway *RemoteGateway) Add(ctx context.Context, token string, book NewBook) error {
	return gateway.client.Post(ctx, token, "/books/", book, nil)
}
