// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/internal/platform/flash"
	requestutil "github.com/taibuivan/etagere/internal/platform/request"
	"github.com/taibuivan/etagere/internal/platform/respond"
	"github.com/taibuivan/etagere/internal/platform/view"
	"github.com/taibuivan/etagere/pkg/convert"
)

// Handler serves the user administration pages.
type Handler struct {
	service *Service
	pages   *respond.Pages
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service, pages *respond.Pages) *Handler {
	return &Handler{service: service, pages: pages}
}

// RegisterRoutes mounts the admin routes. The caller guards them.
//
// # Endpoints
//   - GET  /admin/users             : Search and list accounts.
//   - POST /admin/users/{id}/status : Flip is_active.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/admin/users", handler.list)
	router.Post("/admin/users/{id}/status", handler.toggle)
}

type usersPage struct {
	View
	Pager view.Pager
	Back  string
	Error string
}

/*
List renders one page of accounts.

GET /admin/users?q=lea&page=2
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	current := requestutil.Session(request)
	filter := FilterFromQuery(request.URL.Query())

	result, err := handler.service.List(request.Context(), current, filter)
	page := usersPage{
		View:  result,
		Pager: view.NewPager(result.Meta(), "/admin/users", filter.Remote()),
		Back:  filter.URL(),
	}

	if err != nil {
		if handler.pages.Fail(writer, request, err) {
			return
		}
		page.Error = apperr.UserMessage(err, MessageLoadFailed)
		handler.pages.RenderStatus(writer, request, http.StatusBadGateway, "admin_users", view.Page{Title: "Administration", Data: page})
		return
	}

	handler.pages.Render(writer, request, "admin_users", view.Page{Title: "Administration", Data: page})
}

/*
Toggle activates or deactivates an account.

POST /admin/users/{id}/status

Request Body (form):
  - current_active: the flag as displayed
  - back: list address to return to
*/
func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	current := requestutil.Session(request)
	back := respond.LocalPath(request.PostFormValue("back"), "/admin/users")

	id, ok := requestutil.ID(request, "id")
	if !ok {
		handler.pages.Error(writer, request, apperr.NotFound(MessageUserNotFound), back)
		return
	}

	shown := View{Users: []User{{ID: id, IsActive: convert.ToBool(request.PostFormValue("current_active"))}}}
	saved, err := handler.service.ToggleActive(request.Context(), current, &shown, id)
	if err != nil {
		if handler.pages.Fail(writer, request, err) {
			return
		}
		flash.Error(writer, apperr.UserMessage(err, MessageToggleFailed))
		handler.pages.Redirect(writer, request, back)
		return
	}

	message := MessageDeactivated
	if saved.IsActive {
		message = MessageActivated
	}
	handler.pages.Success(writer, request, message, back)
}
