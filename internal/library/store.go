// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"fmt"
	"net/url"

	"github.com/taibuivan/etagere/internal/platform/apiclient"
)

// Gateway defines the library endpoints of the remote API.
type Gateway interface {
	// List returns one page of the user's books, in either list shape.
	List(ctx context.Context, token string, query url.Values) (apiclient.Page[Book], error)

	// Update patches a book and returns the server's copy.
	Update(ctx context.Context, token string, id int, update Update) (Book, error)

	// Delete removes a book from the library.
	Delete(ctx context.Context, token string, id int) error

	// Notes lists the notes of a book.
	Notes(ctx context.Context, token string, bookID int) ([]Note, error)

	// AddNote creates a note and returns it.
	AddNote(ctx context.Context, token string, bookID int, content string) (Note, error)

	// DeleteNote removes a note.
	DeleteNote(ctx context.Context, token string, bookID, noteID int) error
}

// RemoteGateway implements [Gateway] over the remote REST API.
type RemoteGateway struct {
	client *apiclient.Client
}

// NewRemoteGateway creates a [RemoteGateway].
func NewRemoteGateway(client *apiclient.Client) *RemoteGateway {
	return &RemoteGateway{client: client}
}

// List calls GET /books/mine.
func (gateway *RemoteGateway) List(ctx context.Context, token string, query url.Values) (apiclient.Page[Book], error) {
	return apiclient.GetPage[Book](ctx, gateway.client, token, "/books/mine", query)
}

// Update calls PATCH /books/{id}.
func (gateway *RemoteGateway) Update(ctx context.Context, token string, id int, update Update) (Book, error) {
	var book Book
	if err := gateway.client.Patch(ctx, token, bookPath(id), update, &book); err != nil {
		return Book{}, err
	}
	return book, nil
}

// Delete calls DELETE /books/{id}.
func (gateway *RemoteGateway) Delete(ctx context.Context, token string, id int) error {
	return gateway.client.Delete(ctx, token, bookPath(id))
}

// Notes calls GET /books/{id}/notes.
func (gateway *RemoteGateway) Notes(ctx context.Context, token string, bookID int) ([]Note, error) {
	var notes []Note
	if err := gateway.client.Get(ctx, token, bookPath(bookID)+"/notes", nil, &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []Note{}
	}
	return notes, nil
}

// noteBody is the body of POST /books/{id}/notes.
type noteBody struct {
	Content string `json:"content"`
}

// AddNote calls POST /books/{id}/notes.
func (gateway *RemoteGateway) AddNote(ctx context.Context, token string, bookID int, content string) (Note, error) {
	var note Note
	if err := gateway.client.Post(ctx, token, bookPath(bookID)+"/notes", noteBody{Content: content}, &note); err != nil {
		return Note{}, err
	}
	return note, nil
}

// DeleteNote calls DELETE /books/{id}/notes/{noteId}.
func (gateway *RemoteGateway) DeleteNote(ctx context.Context, token string, bookID, noteID int) error {
	return gateway.client.Delete(ctx, token, fmt.Sprintf("%s/notes/%d", bookPath(bookID), noteID))
}

func bookPath(id int) string {
	return fmt.Sprintf("/books/%d", id)
}
