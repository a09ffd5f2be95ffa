// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/internal/platform/confirm"
	"github.com/taibuivan/etagere/internal/platform/debounce"
	"github.com/taibuivan/etagere/internal/platform/flash"
	requestutil "github.com/taibuivan/etagere/internal/platform/request"
	"github.com/taibuivan/etagere/internal/platform/respond"
	"github.com/taibuivan/etagere/internal/platform/view"
	"github.com/taibuivan/etagere/internal/session"
	"github.com/taibuivan/etagere/pkg/convert"
)

// PageSizes are the sizes offered by the library page.
var PageSizes = []int{10, 20, 50}

const messageLoadFailed = "Impossible de charger ta bibliothèque."

// Handler serves the library pages.
type Handler struct {
	service         *Service
	pages           *respond.Pages
	live            *debounce.Coalescer
	defaultPageSize int
}

// NewHandler constructs a [Handler]. live coalesces the keystrokes of the search box.
func NewHandler(service *Service, pages *respond.Pages, live *debounce.Coalescer, defaultPageSize int) *Handler {
	return &Handler{service: service, pages: pages, live: live, defaultPageSize: defaultPageSize}
}

// RegisterRoutes mounts the library routes.
//
// # Endpoints
//   - GET  /library                                   : Filtered, paged list.
//   - GET  /library/live                              : List fragment for the live search box.
//   - POST /library/books/{id}/status                 : Change the reading status.
//   - POST /library/books/{id}/favorite               : Toggle the favorite flag.
//   - GET  /library/books/{id}/notes                  : Notes of a book.
//   - POST /library/books/{id}/notes                  : Add a note.
//   - POST /library/books/{id}/notes/{noteID}/delete  : Delete a note.
//   - GET  /library/books/{id}/delete                 : Removal confirmation.
//   - POST /library/books/{id}/delete                 : Remove the book.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/library", func(r chi.Router) {
		r.Get("/", handler.list)
		r.Get("/live", handler.liveList)

		r.Route("/books/{id}", func(r chi.Router) {
			r.Post("/status", handler.setStatus)
			r.Post("/favorite", handler.toggleFavorite)
			r.Get("/notes", handler.notes)
			r.Post("/notes", handler.addNote)
			r.Post("/notes/{noteID}/delete", handler.deleteNote)
			r.Get("/delete", handler.confirmDelete)
			r.Post("/delete", handler.delete)
		})
	})
}

// libraryPage is the data of the library template.
type libraryPage struct {
	View
	Statuses  []string
	PageSizes []int
	Pager     view.Pager
	Back      string
	Error     string
}

func newPage(filter Filter, back string) libraryPage {
	return libraryPage{
		View:      View{Filter: filter, Books: []Book{}},
		Statuses:  Statuses,
		PageSizes: PageSizes,
		Back:      back,
	}
}

/*
List renders the library.

GET /library?status=Lu&favorites=true&search=dune&page=1&page_size=20

Description: Filters are read from the URL; an unknown status is ignored.
The filter form carries no page, so changing a filter always lands on page 1.
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	current := requestutil.Session(request)
	filter := FilterFromQuery(request.URL.Query(), handler.defaultPageSize)
	data := newPage(filter, request.URL.RequestURI())

	result, err := handler.service.List(request.Context(), current, filter)
	if err != nil {
		if handler.pages.Fail(writer, request, err) {
			return
		}
		data.Error = messageLoadFailed
		handler.pages.RenderStatus(writer, request, http.StatusBadGateway, "library", view.Page{Title: "Ma bibliothèque", Data: data})
		return
	}

	data.View = result
	data.Pager = view.NewPager(result.Meta(), "/library", filter.Query())
	handler.pages.Render(writer, request, "library", view.Page{Title: "Ma bibliothèque", Data: data})
}

/*
LiveList answers the live search box with the list fragment.

GET /library/live?search=du

Response:
  - 200: The "library_items" fragment
  - 204: A newer keystroke from the same visitor superseded this one
*/
func (handler *Handler) liveList(writer http.ResponseWriter, request *http.Request) {
	current := requestutil.Session(request)

	if err := handler.live.Wait(request.Context(), liveKey(current)); err != nil {
		if errors.Is(err, debounce.ErrSuperseded) {
			respond.NoContent(writer)
		}
		return
	}

	filter := FilterFromQuery(request.URL.Query(), handler.defaultPageSize)
	data := newPage(filter, "/library?"+request.URL.RawQuery)

	result, err := handler.service.List(request.Context(), current, filter)
	if err != nil {
		if handler.pages.Fail(writer, request, err) {
			return
		}
		data.Error = messageLoadFailed
	} else {
		data.View = result
		data.Pager = view.NewPager(result.Meta(), "/library", filter.Query())
	}

	handler.pages.Fragment(writer, request, "library", "library_items", data)
}

// liveKey scopes live search bursts to one visitor.
func liveKey(current session.Session) string {
	return "library:" + current.Token
}

// # Edits

/*
SetStatus changes the reading status of a book.

POST /library/books/{id}/status

Request Body (form):
  - status: "À lire", "En cours" or "Lu"
  - current_status, current_favorite: the state the visitor saw
  - back: the library URL to return to
*/
func (handler *Handler) setStatus(writer http.ResponseWriter, request *http.Request) {
	current := requestutil.Session(request)
	back := respond.LocalPath(request.PostFormValue("back"), "/library")

	id, ok := bookID(request)
	if !ok {
		handler.pages.Error(writer, request, apperr.NotFound(MessageBookNotFound), back)
		return
	}

	shown := postedView(request, id)
	if err := handler.service.SetStatus(request.Context(), current, &shown, id, request.PostFormValue("status")); err != nil {
		handler.editFailed(writer, request, err, MessageStatusFailed, back)
		return
	}

	handler.pages.Success(writer, request, MessageStatusUpdated, back)
}

/*
ToggleFavorite flips the favorite flag of a book.

POST /library/books/{id}/favorite
*/
func (handler *Handler) toggleFavorite(writer http.ResponseWriter, request *http.Request) {
	current := requestutil.Session(request)
	back := respond.LocalPath(request.PostFormValue("back"), "/library")

	id, ok := bookID(request)
	if !ok {
		handler.pages.Error(writer, request, apperr.NotFound(MessageBookNotFound), back)
		return
	}

	shown := postedView(request, id)
	favorite, err := handler.service.ToggleFavorite(request.Context(), current, &shown, id)
	if err != nil {
		handler.editFailed(writer, request, err, MessageFavoriteFailed, back)
		return
	}

	message := MessageFavoriteRemove
	if favorite {
		message = MessageFavoriteAdded
	}
	handler.pages.Success(writer, request, message, back)
}

// editFailed reports a rolled back edit. Validation errors keep their own text.
func (handler *Handler) editFailed(writer http.ResponseWriter, request *http.Request, err error, fallback, back string) {
	if handler.pages.Fail(writer, request, err) {
		return
	}
	message := fallback
	if apperr.HasCode(err, apperr.CodeValidation) {
		message = apperr.UserMessage(err, fallback)
	}
	flash.Error(writer, message)
	handler.pages.Redirect(writer, request, back)
}

// postedView rebuilds the visitor's view of one book from the hidden fields
// of the edit form.
func postedView(request *http.Request, id int) View {
	return View{Books: []Book{{
		ID:         id,
		Status:     request.PostFormValue("current_status"),
		IsFavorite: convert.ToBool(request.PostFormValue("current_favorite")),
	}}}
}

// # Notes

// notesPage is the data of the notes template.
type notesPage struct {
	Book Book
	Back string
}

/*
Notes renders the notes of a book, newest first.

GET /library/books/{id}/notes?title=Dune
*/
func (handler *Handler) notes(writer http.ResponseWriter, request *http.Request) {
	current := requestutil.Session(request)

	id, ok := bookID(request)
	if !ok {
		handler.pages.Error(writer, request, apperr.NotFound(MessageBookNotFound), "/library")
		return
	}

	notes, err := handler.service.Notes(request.Context(), current, id)
	if err != nil {
		handler.pages.Error(writer, request, err, "/library")
		return
	}

	data := notesPage{
		Book: Book{ID: id, Title: request.URL.Query().Get("title"), Notes: notes},
		Back: respond.LocalPath(request.URL.Query().Get("back"), "/library"),
	}
	handler.pages.Render(writer, request, "notes", view.Page{Title: "Notes", Data: data})
}

/*
AddNote adds a note to a book.

POST /library/books/{id}/notes

Description: Blank content is ignored without any request.
*/
func (handler *Handler) addNote(writer http.ResponseWriter, request *http.Request) {
	current := requestutil.Session(request)

	id, ok := bookID(request)
	if !ok {
		handler.pages.Error(writer, request, apperr.NotFound(MessageBookNotFound), "/library")
		return
	}
	target := notesURL(id, request.PostFormValue("title"), request.PostFormValue("back"))

	book := Book{ID: id}
	added, err := handler.service.AddNote(request.Context(), current, &book, request.PostFormValue("content"))
	switch {
	case err != nil:
		handler.pages.Error(writer, request, err, target)
	case added:
		handler.pages.Success(writer, request, MessageNoteAdded, target)
	default:
		handler.pages.Redirect(writer, request, target)
	}
}

/*
DeleteNote removes a note.

POST /library/books/{id}/notes/{noteID}/delete
*/
func (handler *Handler) deleteNote(writer http.ResponseWriter, request *http.Request) {
	current := requestutil.Session(request)

	id, ok := bookID(request)
	noteID, noteOK := requestutil.ID(request, "noteID")
	if !ok || !noteOK {
		handler.pages.Error(writer, request, apperr.NotFound(MessageBookNotFound), "/library")
		return
	}
	target := notesURL(id, request.PostFormValue("title"), request.PostFormValue("back"))

	book := Book{ID: id}
	if err := handler.service.DeleteNote(request.Context(), current, &book, noteID); err != nil {
		handler.pages.Error(writer, request, err, target)
		return
	}

	handler.pages.Success(writer, request, MessageNoteDeleted, target)
}

// # Removal

/*
ConfirmDelete asks before removing a book.

GET /library/books/{id}/delete?title=Dune&back=/library?page=2
*/
func (handler *Handler) confirmDelete(writer http.ResponseWriter, request *http.Request) {
	id, ok := bookID(request)
	if !ok {
		handler.pages.Error(writer, request, apperr.NotFound(MessageBookNotFound), "/library")
		return
	}

	back := respond.LocalPath(request.URL.Query().Get("back"), "/library")
	title := request.URL.Query().Get("title")
	if title == "" {
		title = "ce livre"
	}

	handler.pages.Confirm(writer, request, view.Confirmation{
		Title:   "Supprimer le livre",
		Message: fmt.Sprintf("Supprimer « %s » de ta bibliothèque ? Ses notes seront perdues.", title),
		Action:  fmt.Sprintf("/library/books/%d/delete", id),
		Cancel:  back,
		Hidden:  map[string]string{"back": back},
	})
}

/*
Delete removes a book once confirmed.

POST /library/books/{id}/delete

Request Body (form):
  - confirm: must be "yes", otherwise nothing is sent
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	current := requestutil.Session(request)
	back := respond.LocalPath(request.PostFormValue("back"), "/library")

	id, ok := bookID(request)
	if !ok {
		handler.pages.Error(writer, request, apperr.NotFound(MessageBookNotFound), back)
		return
	}

	err := handler.service.Delete(request.Context(), current, id, confirm.FromForm(request))
	switch {
	case errors.Is(err, confirm.ErrCancelled):
		handler.pages.Redirect(writer, request, back)
	case err != nil:
		handler.pages.Error(writer, request, err, back)
	default:
		handler.pages.Success(writer, request, MessageDeleted, back)
	}
}

// # Helpers

func bookID(request *http.Request) (int, bool) {
	return requestutil.ID(request, "id")
}

// notesURL returns the notes page of a book, keeping the title and back link.
func notesURL(id int, title, back string) string {
	values := url.Values{}
	if title != "" {
		values.Set("title", title)
	}
	if back = respond.LocalPath(back, ""); back != "" {
		values.Set("back", back)
	}

	target := "/library/books/" + strconv.Itoa(id) + "/notes"
	if len(values) > 0 {
		target += "?" + values.Encode()
	}
	return target
}
