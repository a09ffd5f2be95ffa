// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manuscript

import (
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/internal/platform/confirm"
	requestutil "github.com/taibuivan/etagere/internal/platform/request"
	"github.com/taibuivan/etagere/internal/platform/respond"
	"github.com/taibuivan/etagere/internal/platform/view"
	"github.com/taibuivan/etagere/pkg/query"
)

// FontSizes are the sizes offered by the editor toolbar.
var FontSizes = []int{12, 14, 16, 18, 20, 24, 28, 32}

const messageNotFound = "Manuscrit introuvable"

// Handler serves the manuscript workspace.
type Handler struct {
	service *Service
	pages   *respond.Pages
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service, pages *respond.Pages) *Handler {
	return &Handler{service: service, pages: pages}
}

// RegisterRoutes mounts the manuscript routes.
//
// # Endpoints
//   - GET  /manuscripts                                  : List and creation form.
//   - POST /manuscripts                                  : Create a manuscript.
//   - GET  /manuscripts/{id}                             : Chapters, chapter form, share form.
//   - POST /manuscripts/{id}                             : Update title and description.
//   - GET  /manuscripts/{id}/delete                      : Removal confirmation.
//   - POST /manuscripts/{id}/delete                      : Remove the manuscript.
//   - POST /manuscripts/{id}/chapters                    : Add a chapter.
//   - GET  /manuscripts/{id}/chapters/{chapterID}/edit   : Chapter form pre-filled.
//   - POST /manuscripts/{id}/chapters/{chapterID}/edit   : Save the chapter.
//   - GET  /manuscripts/{id}/chapters/{chapterID}/delete : Chapter removal confirmation.
//   - POST /manuscripts/{id}/chapters/{chapterID}/delete : Remove the chapter.
//   - POST /manuscripts/{id}/share                       : Send by e-mail.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/manuscripts", func(r chi.Router) {
		r.Get("/", handler.list)
		r.Post("/", handler.create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handler.detail)
			r.Post("/", handler.update)
			r.Get("/delete", handler.confirmDelete)
			r.Post("/delete", handler.delete)
			r.Post("/chapters", handler.saveChapter)
			r.Get("/chapters/{chapterID}/edit", handler.editChapter)
			r.Post("/chapters/{chapterID}/edit", handler.saveChapter)
			r.Get("/chapters/{chapterID}/delete", handler.confirmDeleteChapter)
			r.Post("/chapters/{chapterID}/delete", handler.deleteChapter)
			r.Post("/share", handler.share)
		})
	})
}

// # View Models

type listPage struct {
	Manuscripts []Manuscript
	Draft       Draft
}

// chapterForm is the chapter editor, in creation or edition mode.
type chapterForm struct {
	ID      int
	Title   string
	Content string
}

// Editing reports whether the form updates an existing chapter.
func (form chapterForm) Editing() bool {
	return form.ID != 0
}

type shareForm struct {
	Recipients string
	Whole      bool
	Selected   []int
	Subject    string
	Message    string
}

type detailPage struct {
	Manuscript Manuscript
	Draft      Draft
	Chapter    chapterForm
	Share      shareForm
	FontSizes  []int
}

// Action returns the URL the chapter form posts to.
func (page detailPage) Action() string {
	if page.Chapter.Editing() {
		return fmt.Sprintf("/manuscripts/%d/chapters/%d/edit", page.Manuscript.ID, page.Chapter.ID)
	}
	return fmt.Sprintf("/manuscripts/%d/chapters", page.Manuscript.ID)
}

func newDetailPage(manuscript Manuscript) detailPage {
	return detailPage{
		Manuscript: manuscript,
		Draft:      Draft{Title: manuscript.Title, Description: manuscript.Description},
		Share:      shareForm{Whole: true},
		FontSizes:  FontSizes,
	}
}

// # Manuscripts

/*
List renders the manuscripts of the user.

GET /manuscripts
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	current := requestutil.Session(request)

	manuscripts, err := handler.service.List(request.Context(), current)
	if err != nil {
		if handler.pages.Fail(writer, request, err) {
			return
		}
		handler.pages.Invalid(writer, request, "manuscripts", view.Page{
			Title: "Mes manuscrits",
			Data:  listPage{Manuscripts: []Manuscript{}},
		}, apperr.UserMessage(err, apperr.MessageInternal))
		return
	}

	handler.pages.Render(writer, request, "manuscripts", view.Page{Title: "Mes manuscrits", Data: listPage{Manuscripts: manuscripts}})
}

/*
Create adds a manuscript, then opens it.

POST /manuscripts

Request Body (form):
  - title: required
  - description: optional
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	current := requestutil.Session(request)
	draft := Draft{Title: request.PostFormValue("title"), Description: request.PostFormValue("description")}

	manuscript, err := handler.service.Create(request.Context(), current, draft)
	if err != nil {
		manuscripts, listErr := handler.service.List(request.Context(), current)
		if listErr != nil {
			manuscripts = []Manuscript{}
		}
		handler.pages.FormError(writer, request, "manuscripts", view.Page{
			Title: "Mes manuscrits",
			Data:  listPage{Manuscripts: manuscripts, Draft: draft},
		}, err)
		return
	}

	handler.pages.Success(writer, request, MessageCreated, fmt.Sprintf("/manuscripts/%d", manuscript.ID))
}

/*
Detail renders a manuscript with an empty chapter form.

GET /manuscripts/{id}
*/
func (handler *Handler) detail(writer http.ResponseWriter, request *http.Request) {
	manuscript, ok := handler.load(writer, request)
	if !ok {
		return
	}
	handler.render(writer, request, newDetailPage(manuscript))
}

/*
Update saves the title and description.

POST /manuscripts/{id}
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	current := requestutil.Session(request)
	id, ok := pathID(request, "id")
	if !ok {
		handler.pages.Error(writer, request, apperr.NotFound(messageNotFound), "/manuscripts")
		return
	}

	draft := Draft{Title: request.PostFormValue("title"), Description: request.PostFormValue("description")}
	if _, err := handler.service.Update(request.Context(), current, id, draft); err != nil {
		handler.formError(writer, request, err, func(page *detailPage) { page.Draft = draft })
		return
	}

	handler.pages.Success(writer, request, MessageUpdated, manuscriptURL(id))
}

/*
ConfirmDelete asks before removing a manuscript.

GET /manuscripts/{id}/delete
*/
func (handler *Handler) confirmDelete(writer http.ResponseWriter, request *http.Request) {
	manuscript, ok := handler.load(writer, request)
	if !ok {
		return
	}

	handler.pages.Confirm(writer, request, view.Confirmation{
		Title:   "Supprimer le manuscrit",
		Message: fmt.Sprintf("Supprimer « %s » et ses %d chapitre(s) ? Cette action est définitive.", manuscript.Title, len(manuscript.Chapters)),
		Action:  fmt.Sprintf("/manuscripts/%d/delete", manuscript.ID),
		Cancel:  manuscriptURL(manuscript.ID),
	})
}

/*
Delete removes a manuscript once confirmed.

POST /manuscripts/{id}/delete
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	current := requestutil.Session(request)
	id, ok := pathID(request, "id")
	if !ok {
		handler.pages.Error(writer, request, apperr.NotFound(messageNotFound), "/manuscripts")
		return
	}

	err := handler.service.Delete(request.Context(), current, id, confirm.FromForm(request))
	switch {
	case errors.Is(err, confirm.ErrCancelled):
		handler.pages.Redirect(writer, request, manuscriptURL(id))
	case err != nil:
		handler.pages.Error(writer, request, err, manuscriptURL(id))
	default:
		handler.pages.Success(writer, request, MessageDeleted, "/manuscripts")
	}
}

// # Chapters

/*
EditChapter renders the manuscript with the chapter form pre-filled.

GET /manuscripts/{id}/chapters/{chapterID}/edit
*/
func (handler *Handler) editChapter(writer http.ResponseWriter, request *http.Request) {
	manuscript, ok := handler.load(writer, request)
	if !ok {
		return
	}

	chapter, found := findChapter(manuscript, request)
	if !found {
		handler.pages.Error(writer, request, apperr.NotFound(MessageUnknownChapter), manuscriptURL(manuscript.ID))
		return
	}

	page := newDetailPage(manuscript)
	page.Chapter = chapterForm{ID: chapter.ID, Title: chapter.Title, Content: chapter.Content}
	handler.render(writer, request, page)
}

/*
SaveChapter creates or updates a chapter.

POST /manuscripts/{id}/chapters
POST /manuscripts/{id}/chapters/{chapterID}/edit

Request Body (form):
  - title: required
  - content: editor HTML, must have visible text
*/
func (handler *Handler) saveChapter(writer http.ResponseWriter, request *http.Request) {
	current := requestutil.Session(request)
	id, ok := pathID(request, "id")
	if !ok {
		handler.pages.Error(writer, request, apperr.NotFound(messageNotFound), "/manuscripts")
		return
	}

	chapterID := 0
	if chi.URLParam(request, "chapterID") != "" {
		if chapterID, ok = pathID(request, "chapterID"); !ok {
			handler.pages.Error(writer, request, apperr.NotFound(MessageUnknownChapter), manuscriptURL(id))
			return
		}
	}

	draft := ChapterDraft{Title: request.PostFormValue("title"), Content: request.PostFormValue("content")}
	if _, err := handler.service.SaveChapter(request.Context(), current, id, chapterID, draft); err != nil {
		handler.formError(writer, request, err, func(page *detailPage) {
			page.Chapter = chapterForm{ID: chapterID, Title: draft.Title, Content: draft.Content}
		})
		return
	}

	message := MessageChapterAdded
	if chapterID != 0 {
		message = MessageChapterSaved
	}
	handler.pages.Success(writer, request, message, manuscriptURL(id))
}

/*
ConfirmDeleteChapter asks before removing a chapter.

GET /manuscripts/{id}/chapters/{chapterID}/delete
*/
func (handler *Handler) confirmDeleteChapter(writer http.ResponseWriter, request *http.Request) {
	manuscript, ok := handler.load(writer, request)
	if !ok {
		return
	}

	chapter, found := findChapter(manuscript, request)
	if !found {
		handler.pages.Error(writer, request, apperr.NotFound(MessageUnknownChapter), manuscriptURL(manuscript.ID))
		return
	}

	handler.pages.Confirm(writer, request, view.Confirmation{
		Title:   "Supprimer le chapitre",
		Message: fmt.Sprintf("Supprimer le chapitre « %s » ? Cette action est définitive.", chapter.Title),
		Action:  fmt.Sprintf("/manuscripts/%d/chapters/%d/delete", manuscript.ID, chapter.ID),
		Cancel:  manuscriptURL(manuscript.ID),
	})
}

/*
DeleteChapter removes a chapter once confirmed.

POST /manuscripts/{id}/chapters/{chapterID}/delete
*/
func (handler *Handler) deleteChapter(writer http.ResponseWriter, request *http.Request) {
	current := requestutil.Session(request)
	id, ok := pathID(request, "id")
	chapterID, chapterOK := pathID(request, "chapterID")
	if !ok || !chapterOK {
		handler.pages.Error(writer, request, apperr.NotFound(MessageUnknownChapter), "/manuscripts")
		return
	}

	err := handler.service.DeleteChapter(request.Context(), current, chapterID, confirm.FromForm(request))
	switch {
	case errors.Is(err, confirm.ErrCancelled):
		handler.pages.Redirect(writer, request, manuscriptURL(id))
	case err != nil:
		handler.pages.Error(writer, request, err, manuscriptURL(id))
	default:
		handler.pages.Success(writer, request, MessageChapterDeleted, manuscriptURL(id))
	}
}

// # Sharing

/*
Share mails the manuscript, or a selection of its chapters.

POST /manuscripts/{id}/share

Request Body (form):
  - recipients: addresses separated by commas, semicolons or spaces
  - scope: "all" or "selection"
  - chapter_ids: repeated, when scope is "selection"
  - subject, message: optional

Response:
  - 303: Back to the manuscript once the backend accepted (202)
  - 422: The form again with the problem
*/
func (handler *Handler) share(writer http.ResponseWriter, request *http.Request) {
	current := requestutil.Session(request)

	manuscript, ok := handler.load(writer, request)
	if !ok {
		return
	}

	if err := request.ParseForm(); err != nil {
		handler.pages.Error(writer, request, apperr.ValidationError("Formulaire illisible"), manuscriptURL(manuscript.ID))
		return
	}

	input := ShareInput{
		Recipients: request.PostForm.Get("recipients"),
		Whole:      request.PostForm.Get("scope") != "selection",
		ChapterIDs: query.IntSlice(request.PostForm["chapter_ids"]),
		Subject:    request.PostForm.Get("subject"),
		Message:    request.PostForm.Get("message"),
	}

	share, err := handler.service.Share(request.Context(), current, manuscript, input)
	if err != nil {
		page := newDetailPage(manuscript)
		page.Share = shareForm{
			Recipients: input.Recipients,
			Whole:      input.Whole,
			Selected:   input.ChapterIDs,
			Subject:    input.Subject,
			Message:    input.Message,
		}
		handler.pages.FormError(writer, request, "manuscript", view.Page{Title: manuscript.Title, Data: page}, err)
		return
	}

	message := fmt.Sprintf("%s à %d destinataire(s)", MessageShared, len(share.Recipients))
	handler.pages.Success(writer, request, message, manuscriptURL(manuscript.ID))
}

// # Helpers

// load fetches the manuscript named by the {id} URL parameter. It writes the
// error response itself and reports false when there is nothing to render.
func (handler *Handler) load(writer http.ResponseWriter, request *http.Request) (Manuscript, bool) {
	current := requestutil.Session(request)

	id, ok := pathID(request, "id")
	if !ok {
		handler.pages.Error(writer, request, apperr.NotFound(messageNotFound), "/manuscripts")
		return Manuscript{}, false
	}

	manuscript, err := handler.service.Get(request.Context(), current, id)
	if err != nil {
		handler.pages.Error(writer, request, err, "/manuscripts")
		return Manuscript{}, false
	}
	return manuscript, true
}

func (handler *Handler) render(writer http.ResponseWriter, request *http.Request, page detailPage) {
	handler.pages.Render(writer, request, "manuscript", view.Page{Title: page.Manuscript.Title, Data: page})
}

// formError re-renders the manuscript with the rejected form values kept.
func (handler *Handler) formError(writer http.ResponseWriter, request *http.Request, err error, keep func(*detailPage)) {
	if handler.pages.Fail(writer, request, err) {
		return
	}

	manuscript, ok := handler.load(writer, request)
	if !ok {
		return
	}

	page := newDetailPage(manuscript)
	keep(&page)
	handler.pages.Invalid(writer, request, "manuscript", view.Page{Title: manuscript.Title, Data: page}, apperr.UserMessage(err, apperr.MessageInternal))
}

func findChapter(manuscript Manuscript, request *http.Request) (Chapter, bool) {
	chapterID, ok := pathID(request, "chapterID")
	if !ok {
		return Chapter{}, false
	}
	index := slices.IndexFunc(manuscript.Chapters, func(chapter Chapter) bool { return chapter.ID == chapterID })
	if index < 0 {
		return Chapter{}, false
	}
	return manuscript.Chapters[index], true
}

func pathID(request *http.Request, name string) (int, bool) {
	return requestutil.ID(request, name)
}

func manuscriptURL(id int) string {
	return fmt.Sprintf("/manuscripts/%d", id)
}
