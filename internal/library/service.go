// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package library implements the personal library view: the filtered book list,
status and favorite edits, reading notes and removal.

Status and favorite edits are optimistic. The change is applied to the view
first, then sent with PATCH /books/{id}; a failure restores the previous
state, a success takes the server's copy of the book. Removing a book needs an
explicit confirmation.
*/
package library

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/internal/platform/confirm"
	"github.com/taibuivan/etagere/internal/platform/optimistic"
	"github.com/taibuivan/etagere/internal/platform/validate"
	"github.com/taibuivan/etagere/internal/session"
	"github.com/taibuivan/etagere/pkg/pagination"
	"github.com/taibuivan/etagere/pkg/pointer"
	"github.com/taibuivan/etagere/pkg/slice"
)

// # Messages

const (
	MessageStatusUpdated  = "Statut mis à jour"
	MessageStatusFailed   = "Impossible de mettre à jour le statut"
	MessageInvalidStatus  = "Statut inconnu"
	MessageFavoriteAdded  = "Ajouté aux favoris"
	MessageFavoriteRemove = "Retiré des favoris"
	MessageFavoriteFailed = "Impossible de mettre à jour les favoris"
	MessageNoteAdded      = "Note ajoutée"
	MessageNoteDeleted    = "Note supprimée"
	MessageDeleted        = "Livre retiré de ta bibliothèque"
	MessageBookNotFound   = "Livre introuvable"
)

// View is one rendered page of the library.
type View struct {
	Filter Filter
	Books  []Book
	Total  int
}

// Meta returns the pager state of the view.
func (view View) Meta() pagination.Meta {
	return pagination.NewMeta(view.Filter.Params.Page, view.Filter.Params.Limit, view.Total)
}

// Find returns the book with the given ID.
func (view View) Find(id int) (Book, bool) {
	index := slices.IndexFunc(view.Books, func(book Book) bool { return book.ID == id })
	if index < 0 {
		return Book{}, false
	}
	return view.Books[index], true
}

// Service runs the library operations.
type Service struct {
	gateway Gateway
	logger  *slog.Logger
}

// NewService constructs a [Service].
func NewService(gateway Gateway, logger *slog.Logger) *Service {
	return &Service{gateway: gateway, logger: logger}
}

// List fetches the page of books selected by filter.
//
// A bare array answer is taken as the whole filtered collection: it is sorted
// by creation date, newest first, before the page window is cut.
func (service *Service) List(ctx context.Context, current session.Session, filter Filter) (View, error) {
	page, err := service.gateway.List(ctx, current.Token, filter.Remote())
	if err != nil {
		return View{Filter: filter}, err
	}

	if page.Bare {
		slices.SortStableFunc(page.Items, func(a, b Book) int {
			return b.CreatedAt.Compare(a.CreatedAt.Time)
		})
	}
	page = page.Fit(filter.Params)

	return View{Filter: filter, Books: page.Items, Total: page.Total}, nil
}

// # Optimistic edits

// SetStatus changes the status of book id inside view.
//
// On failure view is left exactly as it was and the remote error is returned.
func (service *Service) SetStatus(ctx context.Context, current session.Session, view *View, id int, status string) error {
	normalized, ok := NormalizeStatus(status)
	if !ok {
		return validate.RequiredError("status", MessageInvalidStatus)
	}

	_, err := service.edit(ctx, current, view, id, Update{Status: pointer.To(normalized)}, func(book Book) Book {
		book.Status = normalized
		return book
	})
	if err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "library_status_changed", slog.Int("book_id", id), slog.String("status", normalized))
	return nil
}

// ToggleFavorite flips the favorite flag of book id inside view and returns
// the flag the server settled on.
func (service *Service) ToggleFavorite(ctx context.Context, current session.Session, view *View, id int) (bool, error) {
	book, found := view.Find(id)
	if !found {
		return false, apperr.NotFound(MessageBookNotFound)
	}
	favorite := !book.IsFavorite

	saved, err := service.edit(ctx, current, view, id, Update{IsFavorite: pointer.To(favorite)}, func(book Book) Book {
		book.IsFavorite = favorite
		return book
	})
	if err != nil {
		return book.IsFavorite, err
	}

	service.logger.InfoContext(ctx, "library_favorite_toggled", slog.Int("book_id", id), slog.Bool("favorite", saved.IsFavorite))
	return saved.IsFavorite, nil
}

// edit runs one optimistic PATCH on the book id of view.
func (service *Service) edit(ctx context.Context, current session.Session, view *View, id int, update Update, change func(Book) Book) (Book, error) {
	if _, found := view.Find(id); !found {
		return Book{}, apperr.NotFound(MessageBookNotFound)
	}

	matches := func(book Book) bool { return book.ID == id }

	return optimistic.Apply(ctx, &view.Books,
		func(books []Book) []Book {
			book, _ := View{Books: books}.Find(id)
			next, _ := slice.ReplaceFirst(books, matches, change(book))
			return next
		},
		func(ctx context.Context) (Book, error) {
			return service.gateway.Update(ctx, current.Token, id, update)
		},
		func(books []Book, saved Book) []Book {
			local, _ := View{Books: books}.Find(id)
			if saved.Notes == nil {
				saved.Notes = local.Notes
			}
			next, _ := slice.ReplaceFirst(books, matches, saved)
			return next
		},
	)
}

// # Notes

// Notes lists the notes of a book.
func (service *Service) Notes(ctx context.Context, current session.Session, bookID int) ([]Note, error) {
	return service.gateway.Notes(ctx, current.Token, bookID)
}

// AddNote creates a note on book and puts it in front of book.Notes.
//
// Content is trimmed; blank content sends nothing and reports false.
func (service *Service) AddNote(ctx context.Context, current session.Session, book *Book, content string) (bool, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return false, nil
	}

	note, err := service.gateway.AddNote(ctx, current.Token, book.ID, content)
	if err != nil {
		return false, err
	}

	note.BookID = cmp.Or(note.BookID, book.ID)
	book.Notes = slice.Prepend(book.Notes, note)

	service.logger.InfoContext(ctx, "library_note_added", slog.Int("book_id", book.ID), slog.Int("note_id", note.ID))
	return true, nil
}

// DeleteNote removes a note from the server, then from book.Notes.
func (service *Service) DeleteNote(ctx context.Context, current session.Session, book *Book, noteID int) error {
	if err := service.gateway.DeleteNote(ctx, current.Token, book.ID, noteID); err != nil {
		return err
	}

	remaining := slice.Filter(book.Notes, func(note Note) bool { return note.ID != noteID })
	if remaining == nil {
		remaining = []Note{}
	}
	book.Notes = remaining

	service.logger.InfoContext(ctx, "library_note_deleted", slog.Int("book_id", book.ID), slog.Int("note_id", noteID))
	return nil
}

// # Removal

// Delete removes book id from the library once confirmed.
//
// Without confirmation it returns [confirm.ErrCancelled] and sends nothing.
func (service *Service) Delete(ctx context.Context, current session.Session, id int, confirmed bool) error {
	return confirm.Run(ctx, confirmed, func(ctx context.Context) error {
		if err := service.gateway.Delete(ctx, current.Token, id); err != nil {
			return err
		}
		service.logger.InfoContext(ctx, "library_book_deleted", slog.Int("book_id", id))
		return nil
	})
}
