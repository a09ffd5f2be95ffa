// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jaswdr/faker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/etagere/internal/library"
	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/internal/platform/confirm"
	"github.com/taibuivan/etagere/internal/platform/webtest"
	"github.com/taibuivan/etagere/internal/session"
	"github.com/taibuivan/etagere/pkg/pagination"
)

var current = session.Session{Token: webtest.Token}

// libraryBackend fakes the library endpoints of the remote API.
type libraryBackend struct {
	mutex sync.Mutex

	list      any
	listErr   int
	patchErr  int
	lastQuery url.Values
	patches   []map[string]any
	deletes   []string
	notes     []map[string]any
}

func (backend *libraryBackend) handler() http.Handler {
	router := chi.NewRouter()

	router.Get("/books/mine", func(writer http.ResponseWriter, request *http.Request) {
		backend.mutex.Lock()
		backend.lastQuery = request.URL.Query()
		backend.mutex.Unlock()

		if backend.listErr != 0 {
			webtest.Detail(writer, backend.listErr, "boom")
			return
		}
		webtest.JSON(writer, http.StatusOK, backend.list)
	})

	router.Patch("/books/{id}", func(writer http.ResponseWriter, request *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(request.Body).Decode(&body)

		backend.mutex.Lock()
		backend.patches = append(backend.patches, body)
		backend.mutex.Unlock()

		if backend.patchErr != 0 {
			webtest.Detail(writer, backend.patchErr, "refused")
			return
		}

		id, _ := strconv.Atoi(chi.URLParam(request, "id"))
		book := map[string]any{"id": id, "title": "Server title", "status": "À lire", "is_favorite": false}
		for key, value := range body {
			book[key] = value
		}
		webtest.JSON(writer, http.StatusOK, book)
	})

	router.Delete("/books/{id}", func(writer http.ResponseWriter, request *http.Request) {
		backend.mutex.Lock()
		backend.deletes = append(backend.deletes, request.URL.Path)
		backend.mutex.Unlock()
		writer.WriteHeader(http.StatusNoContent)
	})

	router.Get("/books/{id}/notes", func(writer http.ResponseWriter, _ *http.Request) {
		webtest.JSON(writer, http.StatusOK, backend.notes)
	})

	router.Post("/books/{id}/notes", func(writer http.ResponseWriter, request *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(request.Body).Decode(&body)

		backend.mutex.Lock()
		note := map[string]any{"id": len(backend.notes) + 100, "content": body["content"], "created_at": "2026-03-01T10:00:00"}
		backend.notes = append(backend.notes, note)
		backend.mutex.Unlock()

		webtest.JSON(writer, http.StatusOK, note)
	})

	router.Delete("/books/{id}/notes/{noteID}", func(writer http.ResponseWriter, request *http.Request) {
		backend.mutex.Lock()
		backend.deletes = append(backend.deletes, request.URL.Path)
		backend.mutex.Unlock()
		writer.WriteHeader(http.StatusNoContent)
	})

	return router
}

func (backend *libraryBackend) service(t *testing.T) *library.Service {
	t.Helper()
	return library.NewService(library.NewRemoteGateway(webtest.Backend(t, backend.handler())), webtest.Logger())
}

// books builds n entries created one day apart, oldest first.
func books(n int) []map[string]any {
	fake := faker.New()
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	list := make([]map[string]any, n)
	for i := range list {
		list[i] = map[string]any{
			"id":          i + 1,
			"title":       fake.Lorem().Sentence(3),
			"author":      fake.Person().Name(),
			"status":      library.StatusToRead,
			"is_favorite": false,
			"created_at":  start.AddDate(0, 0, i).Format("2006-01-02T15:04:05"),
		}
	}
	return list
}

/*
TestFilter_Remote sends status, search and favorites only when set.
*/
func TestFilter_Remote(t *testing.T) {
	tests := []struct {
		name   string
		filter library.Filter
		want   url.Values
	}{
		{
			name:   "defaults",
			filter: library.Filter{Params: pagination.New(1, 20, 100)},
			want:   url.Values{"page": {"1"}, "page_size": {"20"}},
		},
		{
			name: "everything",
			filter: library.Filter{
				Status:        library.StatusRead,
				FavoritesOnly: true,
				Search:        "dune",
				Params:        pagination.New(3, 10, 100),
			},
			want: url.Values{
				"page": {"3"}, "page_size": {"10"},
				"status": {"Lu"}, "search": {"dune"}, "favorites": {"true"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Remote())
		})
	}
}

/*
TestFilterFromQuery keeps only valid statuses and clamps the page.
*/
func TestFilterFromQuery(t *testing.T) {
	tests := []struct {
		name          string
		query         url.Values
		wantStatus    string
		wantFavorites bool
		wantPage      int
		wantSize      int
	}{
		{"empty", url.Values{}, "", false, 1, 20},
		{"valid_status", url.Values{"status": {"En cours"}}, library.StatusReading, false, 1, 20},
		{"decomposed_accent", url.Values{"status": {"A\u0300 lire"}}, library.StatusToRead, false, 1, 20},
		{"unknown_status", url.Values{"status": {"Abandonné"}}, "", false, 1, 20},
		{"favorites_checkbox", url.Values{"favorites": {"on"}}, "", true, 1, 20},
		{"paging", url.Values{"page": {"0"}, "page_size": {"500"}}, "", false, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := library.FilterFromQuery(tt.query, 20)

			assert.Equal(t, tt.wantStatus, filter.Status)
			assert.Equal(t, tt.wantFavorites, filter.FavoritesOnly)
			assert.Equal(t, tt.wantPage, filter.Params.Page)
			assert.Equal(t, tt.wantSize, filter.Params.Limit)
		})
	}
}

/*
TestList_Envelope passes the filter through and keeps the envelope total.
*/
func TestList_Envelope(t *testing.T) {
	backend := &libraryBackend{list: map[string]any{"items": books(3), "total_items": 42}}
	filter := library.Filter{Status: library.StatusRead, Params: pagination.New(2, 3, 100)}

	view, err := backend.service(t).List(context.Background(), current, filter)

	require.NoError(t, err)
	assert.Equal(t, "Lu", backend.lastQuery.Get("status"))
	assert.Equal(t, "2", backend.lastQuery.Get("page"))
	assert.Len(t, view.Books, 3)
	assert.Equal(t, 42, view.Total)
	assert.Equal(t, 14, view.Meta().TotalPages)
}

/*
TestList_BareArray sorts newest first, then cuts the page window locally.
*/
func TestList_BareArray(t *testing.T) {
	backend := &libraryBackend{list: books(5)}

	view, err := backend.service(t).List(context.Background(), current, library.Filter{Params: pagination.New(2, 2, 100)})

	require.NoError(t, err)
	assert.Equal(t, 5, view.Total)
	require.Len(t, view.Books, 2)
	assert.Equal(t, 3, view.Books[0].ID)
	assert.Equal(t, 2, view.Books[1].ID)
}

/*
TestSetStatus_Reconciles takes the server copy and keeps the local notes.
*/
func TestSetStatus_Reconciles(t *testing.T) {
	backend := &libraryBackend{}
	view := library.View{Books: []library.Book{
		{ID: 1, Title: "Local", Status: library.StatusToRead, Notes: []library.Note{{ID: 7, Content: "keep"}}},
		{ID: 2, Title: "Other", Status: library.StatusToRead},
	}}

	err := backend.service(t).SetStatus(context.Background(), current, &view, 1, "Lu")

	require.NoError(t, err)
	require.Len(t, backend.patches, 1)
	assert.Equal(t, map[string]any{"status": "Lu"}, backend.patches[0])

	assert.Equal(t, library.StatusRead, view.Books[0].Status)
	assert.Equal(t, "Server title", view.Books[0].Title)
	require.Len(t, view.Books[0].Notes, 1)
	assert.Equal(t, "keep", view.Books[0].Notes[0].Content)
	assert.Equal(t, "Other", view.Books[1].Title)
}

/*
TestSetStatus_RollsBack restores the exact snapshot when the PATCH fails.
*/
func TestSetStatus_RollsBack(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode string
	}{
		{"server_error", http.StatusInternalServerError, apperr.CodeUpstream},
		{"session_lost", http.StatusUnauthorized, apperr.CodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &libraryBackend{patchErr: tt.status}
			original := []library.Book{{ID: 1, Title: "Dune", Status: library.StatusReading}}
			view := library.View{Books: original}

			err := backend.service(t).SetStatus(context.Background(), current, &view, 1, library.StatusRead)

			assert.True(t, apperr.HasCode(err, tt.wantCode))
			assert.Equal(t, original, view.Books)
			assert.Equal(t, library.StatusReading, original[0].Status)
		})
	}
}

/*
TestSetStatus_Rejected sends nothing for an unknown status or book.
*/
func TestSetStatus_Rejected(t *testing.T) {
	backend := &libraryBackend{}
	service := backend.service(t)
	view := library.View{Books: []library.Book{{ID: 1, Status: library.StatusToRead}}}

	err := service.SetStatus(context.Background(), current, &view, 1, "Abandonné")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	err = service.SetStatus(context.Background(), current, &view, 99, library.StatusRead)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	assert.Empty(t, backend.patches)
}

/*
TestToggleFavorite flips the flag and reports the server value.
*/
func TestToggleFavorite(t *testing.T) {
	backend := &libraryBackend{}
	view := library.View{Books: []library.Book{{ID: 4, IsFavorite: false}}}

	favorite, err := backend.service(t).ToggleFavorite(context.Background(), current, &view, 4)

	require.NoError(t, err)
	assert.True(t, favorite)
	assert.True(t, view.Books[0].IsFavorite)
	assert.Equal(t, map[string]any{"is_favorite": true}, backend.patches[0])

	backend.patchErr = http.StatusBadGateway
	favorite, err = backend.service(t).ToggleFavorite(context.Background(), current, &view, 4)

	assert.Error(t, err)
	assert.True(t, favorite)
	assert.True(t, view.Books[0].IsFavorite)
}

/*
TestAddNote trims, ignores blanks and prepends.
*/
func TestAddNote(t *testing.T) {
	backend := &libraryBackend{}
	service := backend.service(t)
	book := library.Book{ID: 1, Notes: []library.Note{{ID: 1, Content: "old"}}}

	added, err := service.AddNote(context.Background(), current, &book, "   \n ")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, backend.notes)

	added, err = service.AddNote(context.Background(), current, &book, "  Relire le chapitre 3  ")
	require.NoError(t, err)
	assert.True(t, added)

	require.Len(t, book.Notes, 2)
	assert.Equal(t, "Relire le chapitre 3", book.Notes[0].Content)
	assert.Equal(t, 1, book.Notes[0].BookID)
	assert.Equal(t, "old", book.Notes[1].Content)
}

/*
TestDeleteNote removes the note locally after the server agreed.
*/
func TestDeleteNote(t *testing.T) {
	backend := &libraryBackend{}
	book := library.Book{ID: 3, Notes: []library.Note{{ID: 1}, {ID: 2}}}

	require.NoError(t, backend.service(t).DeleteNote(context.Background(), current, &book, 1))

	assert.Equal(t, []string{"/books/3/notes/1"}, backend.deletes)
	require.Len(t, book.Notes, 1)
	assert.Equal(t, 2, book.Notes[0].ID)
}

/*
TestDelete only calls the API once confirmed.
*/
func TestDelete(t *testing.T) {
	backend := &libraryBackend{}
	service := backend.service(t)

	err := service.Delete(context.Background(), current, 5, false)
	assert.ErrorIs(t, err, confirm.ErrCancelled)
	assert.Empty(t, backend.deletes)

	require.NoError(t, service.Delete(context.Background(), current, 5, true))
	assert.Equal(t, []string{"/books/5"}, backend.deletes)
}
