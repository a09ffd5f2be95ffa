// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/etagere/internal/platform/apiclient"
	"github.com/taibuivan/etagere/internal/platform/constants"
	"github.com/taibuivan/etagere/pkg/convert"
	"github.com/taibuivan/etagere/pkg/pagination"
)

// Book is one entry of the user's library.
type Book struct {
	ID              int            `json:"id"`
	UserID          int            `json:"user_id"`
	Title           string         `json:"title"`
	Author          string         `json:"author"`
	Description     string         `json:"description"`
	Status          string         `json:"status"`
	PublicationDate string         `json:"publication_date"`
	ISBN            string         `json:"isbn"`
	CoverImage      string         `json:"cover_image"`
	ExternalID      string         `json:"external_id"`
	Genre           string         `json:"genre"`
	IsFavorite      bool           `json:"is_favorite"`
	CreatedAt       apiclient.Time `json:"created_at"`

	// Notes is nil when the answer omitted them, empty when there are none.
	Notes []Note `json:"notes"`
}

// Note is a free-text annotation on a [Book].
type Note struct {
	ID        int            `json:"id"`
	BookID    int            `json:"book_id"`
	Content   string         `json:"content"`
	CreatedAt apiclient.Time `json:"created_at"`
}

// Update is the body of PATCH /books/{id}. Only set fields are sent.
type Update struct {
	Status     *string `json:"status,omitempty"`
	IsFavorite *bool   `json:"is_favorite,omitempty"`
}

// # Statuses

const (
	StatusToRead  = "À lire"
	StatusReading = "En cours"
	StatusRead    = "Lu"
)

// Statuses lists the reading statuses in display order.
var Statuses = []string{StatusToRead, StatusReading, StatusRead}

// NormalizeStatus returns the canonical spelling of value and whether it is
// a known status. Input is NFC-normalised first, so a decomposed "À" coming
// from a URL or a terminal still matches.
func NormalizeStatus(value string) (string, bool) {
	normalized := norm.NFC.String(strings.TrimSpace(value))
	if slices.Contains(Statuses, normalized) {
		return normalized, true
	}
	return "", false
}

// DisplayStatus returns the status to preselect for a book, falling back to
// the first status when the stored one is unknown.
func (book Book) DisplayStatus() string {
	if status, ok := NormalizeStatus(book.Status); ok {
		return status
	}
	return Statuses[0]
}

// # Filter

// Filter is the state of the library view.
type Filter struct {
	Status        string
	FavoritesOnly bool
	Search        string
	Params        pagination.Params
}

// FilterFromQuery reads the filter from a URL query.
//
// status is kept only when it is a valid status; favorites accepts the usual
// truthy spellings; page and page_size are clamped.
func FilterFromQuery(values url.Values, defaultPageSize int) Filter {
	filter := Filter{
		FavoritesOnly: convert.ToBool(values.Get("favorites")),
		Search:        strings.TrimSpace(values.Get("search")),
		Params:        pagination.FromQuery(values, defaultPageSize, constants.MaxPageSize),
	}

	if status, ok := NormalizeStatus(values.Get("status")); ok {
		filter.Status = status
	}

	return filter
}

// Remote returns the query of GET /books/mine.
// status, search and favorites are only sent when set.
func (filter Filter) Remote() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(filter.Params.Page))
	values.Set("page_size", strconv.Itoa(filter.Params.Limit))

	if filter.Status != "" {
		values.Set("status", filter.Status)
	}
	if filter.Search != "" {
		values.Set("search", filter.Search)
	}
	if filter.FavoritesOnly {
		values.Set("favorites", "true")
	}

	return values
}

// Query returns the filter as a library page URL query, without the page.
func (filter Filter) Query() url.Values {
	values := url.Values{}
	if filter.Status != "" {
		values.Set("status", filter.Status)
	}
	if filter.Search != "" {
		values.Set("search", filter.Search)
	}
	if filter.FavoritesOnly {
		values.Set("favorites", "true")
	}
	return values
}
