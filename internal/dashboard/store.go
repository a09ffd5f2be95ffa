// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"context"
	"net/url"
	"strconv"

	"github.com/taibuivan/etagere/internal/library"
	"github.com/taibuivan/etagere/internal/manuscript"
	"github.com/taibuivan/etagere/internal/platform/apiclient"
)

// Gateway defines the endpoints the dashboard reads.
type Gateway interface {
	// Bucket returns the first size books with the given status.
	Bucket(ctx context.Context, token, status string, size int) (apiclient.Page[library.Book], error)

	// Recommendations returns up to limit suggested books.
	Recommendations(ctx context.Context, token string, limit int) ([]Recommendation, error)

	// RecentChapters returns the most recently written chapters.
	RecentChapters(ctx context.Context, token string) ([]manuscript.Chapter, error)
}

// RemoteGateway implements [Gateway] over the remote REST API.
type RemoteGateway struct {
	client *apiclient.Client
}

// NewRemoteGateway creates a [RemoteGateway].
func NewRemoteGateway(client *apiclient.Client) *RemoteGateway {
	return &RemoteGateway{client: client}
}

// Bucket calls GET /books/mine?status=X&page=1&page_size=N.
func (gateway *RemoteGateway) Bucket(ctx context.Context, token, status string, size int) (apiclient.Page[library.Book], error) {
	query := url.Values{}
	query.Set("status", status)
	query.Set("page", "1")
	query.Set("page_size", strconv.Itoa(size))

	return apiclient.GetPage[library.Book](ctx, gateway.client, token, "/books/mine", query)
}

// Recommendations calls GET /books/recommendations?limit=N.
func (gateway *RemoteGateway) Recommendations(ctx context.Context, token string, limit int) ([]Recommendation, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	var recommendations []Recommendation
	if err := gateway.client.Get(ctx, token, "/books/recommendations", query, &recommendations); err != nil {
		return nil, err
	}
	return recommendations, nil
}

// RecentChapters calls GET /manuscripts/chapters/recent.
func (gateway *RemoteGateway) RecentChapters(ctx context.Context, token string) ([]manuscript.Chapter, error) {
	var chapters []manuscript.Chapter
	if err := gateway.client.Get(ctx, token, "/manuscripts/chapters/recent", nil, &chapters); err != nil {
		return nil, err
	}
	return chapters, nil
}
