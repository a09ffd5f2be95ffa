// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manuscript

import (
	"cmp"
	"slices"

	"github.com/taibuivan/etagere/internal/platform/apiclient"
)

// Manuscript is a writing project and its chapters.
type Manuscript struct {
	ID          int            `json:"id"`
	UserID      int            `json:"user_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	CreatedAt   apiclient.Time `json:"created_at"`
	UpdatedAt   apiclient.Time `json:"updated_at"`
	Chapters    []Chapter      `json:"chapters"`
}

// Chapter is one chapter of a [Manuscript]. Content is editor HTML.
type Chapter struct {
	ID           int            `json:"id"`
	ManuscriptID int            `json:"manuscript_id"`
	UserID       int            `json:"user_id"`
	Title        string         `json:"title"`
	Content      string         `json:"content"`
	OrderIndex   *int           `json:"order_index"`
	CreatedAt    apiclient.Time `json:"created_at"`
	UpdatedAt    apiclient.Time `json:"updated_at"`

	// Manuscript is only set by GET /manuscripts/chapters/recent.
	Manuscript *Summary `json:"manuscript,omitempty"`
}

// Summary identifies the manuscript of a recent chapter.
type Summary struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// ManuscriptTitle returns the title of the owning manuscript, when known.
func (chapter Chapter) ManuscriptTitle() string {
	if chapter.Manuscript == nil {
		return ""
	}
	return chapter.Manuscript.Title
}

// Order returns the position used for sorting; chapters without one go last.
func (chapter Chapter) Order() int {
	if chapter.OrderIndex == nil {
		return int(^uint(0) >> 1)
	}
	return *chapter.OrderIndex
}

// SortChapters orders chapters by order_index, then by ID.
func SortChapters(chapters []Chapter) {
	slices.SortStableFunc(chapters, func(a, b Chapter) int {
		return cmp.Or(cmp.Compare(a.Order(), b.Order()), cmp.Compare(a.ID, b.ID))
	})
}

// # Payloads

// Draft is the body of POST /manuscripts and PATCH /manuscripts/{id}.
type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ChapterDraft is the body of the chapter create and update calls.
type ChapterDraft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Share is the body of POST /manuscripts/{id}/share.
//
// A nil ChapterIDs shares the whole manuscript.
type Share struct {
	Recipients []string `json:"recipients"`
	ChapterIDs []int    `json:"chapter_ids,omitempty"`
	Subject    *string  `json:"subject,omitempty"`
	Message    *string  `json:"message,omitempty"`
}
