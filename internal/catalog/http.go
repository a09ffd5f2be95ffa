// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/internal/platform/constants"
	"github.com/taibuivan/etagere/internal/platform/flash"
	requestutil "github.com/taibuivan/etagere/internal/platform/request"
	"github.com/taibuivan/etagere/internal/platform/respond"
	"github.com/taibuivan/etagere/internal/platform/view"
	"github.com/taibuivan/etagere/pkg/pagination"
)

// PageSizes are the sizes offered by the search page.
var PageSizes = []int{10, 20, 40}

// Handler serves the search page.
type Handler struct {
	service         *Service
	pages           *respond.Pages
	defaultPageSize int
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service, pages *respond.Pages, defaultPageSize int) *Handler {
	return &Handler{service: service, pages: pages, defaultPageSize: defaultPageSize}
}

// RegisterRoutes mounts the catalog routes.
//
// # Endpoints
//   - GET  /search     : Search form and results (?q=&page=&page_size=).
//   - POST /search/add : Add a result to the library.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/search", handler.search)
	router.Post("/search/add", handler.add)
}

// searchPage is the data of the search template.
type searchPage struct {
	Result
	PageSize  int
	PageSizes []int
	Pager     view.Pager
	Back      string
}

/*
Search renders the catalog page.

GET /search?q=Dune&page=2&page_size=20

Description: A blank query renders the idle form. Page 2 with size 20 asks the
proxy for start_index=20&max_results=20.
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	current := requestutil.Session(request)
	values := request.URL.Query()
	params := pagination.FromQuery(values, handler.defaultPageSize, constants.CatalogMaxPageSize)

	result, err := handler.service.Search(request.Context(), current, Query{Text: values.Get("q"), Params: params})

	page := view.Page{Title: "Rechercher un livre"}
	data := searchPage{PageSize: params.Limit, PageSizes: PageSizes, Back: request.URL.RequestURI()}

	if err != nil {
		if handler.pages.Fail(writer, request, err) {
			return
		}
		page.Flash = &flash.Message{Kind: flash.KindError, Text: "Erreur lors de la recherche."}
		data.Result = Result{Query: strings.TrimSpace(values.Get("q")), Idle: true}
		page.Data = data
		handler.pages.RenderStatus(writer, request, http.StatusBadGateway, "search", page)
		return
	}

	data.Result = result
	data.Pager = view.NewPager(result.Meta, "/search", url.Values{"q": {result.Query}})
	page.Data = data
	handler.pages.Render(writer, request, "search", page)
}

/*
Add puts a result in the library.

POST /search/add

Response:
  - 303: Back to the originating page with a success notice
  - 303: Back with "Livre déjà dans la bibliothèque" when the backend answers 409
*/
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	current := requestutil.Session(request)
	back := respond.LocalPath(request.PostFormValue("back"), "/search")

	err := handler.service.Add(request.Context(), current, NewBookFromForm(request.PostForm))
	switch {
	case err == nil:
		handler.pages.Success(writer, request, MessageAdded, back)
	case apperr.IsConflict(err):
		flash.Info(writer, apperr.UserMessage(err, MessageAlreadyInLibrary))
		handler.pages.Redirect(writer, request, back)
	default:
		handler.pages.Error(writer, request, err, back)
	}
}

// NewBookFromForm reads the hidden fields of an add button.
func NewBookFromForm(values url.Values) NewBook {
	book := NewBook{
		ExternalID:  values.Get("external_id"),
		Title:       values.Get("title"),
		Author:      values.Get("author"),
		Description: values.Get("description"),
		CoverImage:  values.Get("cover_image"),
		Status:      StatusToRead,
	}

	if value := values.Get("publication_date"); value != "" {
		book.PublicationDate = &value
	}
	if value := values.Get("isbn"); value != "" {
		book.ISBN = &value
	}
	if value := values.Get("genre"); value != "" {
		book.Genre = &value
	}

	return book
}
