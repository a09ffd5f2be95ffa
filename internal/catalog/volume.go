// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"strings"

	"github.com/taibuivan/etagere/pkg/pagination"
)

// # Remote Shapes

// Volume is one catalog entry as proxied from Google Books.
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

// VolumeInfo is the descriptive part of a [Volume].
type VolumeInfo struct {
	Title               string       `json:"title"`
	Authors             []string     `json:"authors"`
	Categories          []string     `json:"categories"`
	Description         string       `json:"description"`
	ImageLinks          ImageLinks   `json:"imageLinks"`
	PublishedDate       string       `json:"publishedDate"`
	IndustryIdentifiers []Identifier `json:"industryIdentifiers"`
}

// ImageLinks lists the cover sizes offered by the catalog.
type ImageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

// Identifier is an ISBN-10, ISBN-13 or vendor identifier.
type Identifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// # Display Defaults

const (
	UnknownTitle     = "Titre inconnu"
	UnknownAuthor    = "Auteur inconnu"
	PlaceholderCover = "https://via.placeholder.com/128x200?text=Pas+d'image"

	// StatusToRead is the status of every entry added from the catalog.
	StatusToRead = "À lire"

	// MessageAlreadyInLibrary is shown when the backend answers 409.
	MessageAlreadyInLibrary = "Livre déjà dans la bibliothèque"

	// MessageAdded confirms a successful add.
	MessageAdded = "Livre ajouté à ta bibliothèque !"
)

// Title returns the title or its placeholder.
func (volume Volume) Title() string {
	if title := strings.TrimSpace(volume.VolumeInfo.Title); title != "" {
		return title
	}
	return UnknownTitle
}

// Author joins the authors or returns the placeholder.
func (volume Volume) Author() string {
	if len(volume.VolumeInfo.Authors) == 0 {
		return UnknownAuthor
	}
	return strings.Join(volume.VolumeInfo.Authors, ", ")
}

// Cover returns the thumbnail URL or the placeholder image.
func (volume Volume) Cover() string {
	if volume.VolumeInfo.ImageLinks.Thumbnail != "" {
		return volume.VolumeInfo.ImageLinks.Thumbnail
	}
	return PlaceholderCover
}

// ISBN returns the first industry identifier, or "".
func (volume Volume) ISBN() string {
	if len(volume.VolumeInfo.IndustryIdentifiers) == 0 {
		return ""
	}
	return volume.VolumeInfo.IndustryIdentifiers[0].Identifier
}

// # Library Payload

// NewBook is the body of POST /books/.
type NewBook struct {
	ExternalID      string  `json:"external_id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Description     string  `json:"description"`
	PublicationDate *string `json:"publication_date"`
	ISBN            *string `json:"isbn"`
	CoverImage      string  `json:"cover_image"`
	Genre           *string `json:"genre,omitempty"`
	Status          string  `json:"status"`
}

// ToNewBook builds the add-to-library payload with status "À lire".
func (volume Volume) ToNewBook() NewBook {
	book := NewBook{
		ExternalID:  volume.ID,
		Title:       volume.Title(),
		Author:      volume.Author(),
		Description: volume.VolumeInfo.Description,
		CoverImage:  volume.Cover(),
		Status:      StatusToRead,
	}

	if date := volume.VolumeInfo.PublishedDate; date != "" {
		book.PublicationDate = &date
	}
	if isbn := volume.ISBN(); isbn != "" {
		book.ISBN = &isbn
	}
	if len(volume.VolumeInfo.Categories) > 0 {
		genre := volume.VolumeInfo.Categories[0]
		book.Genre = &genre
	}

	return book
}

// # View Model

// Item is one search result as displayed.
type Item struct {
	Volume
	InLibrary bool
}

// Query is a catalog search request.
type Query struct {
	Text   string
	Params pagination.Params
}

// Result is what the search page renders.
type Result struct {
	Query string
	Items []Item
	Meta  pagination.Meta

	// Idle is true when no search was run (blank query).
	Idle bool
}

// Empty reports whether a search ran and found nothing.
func (result Result) Empty() bool {
	return !result.Idle && len(result.Items) == 0
}
