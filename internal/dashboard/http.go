// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/etagere/internal/platform/respond"
	"github.com/taibuivan/etagere/internal/platform/view"
	"github.com/taibuivan/etagere/internal/session"
)

// Handler serves the dashboard.
type Handler struct {
	service *Service
	pages   *respond.Pages
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service, pages *respond.Pages) *Handler {
	return &Handler{service: service, pages: pages}
}

// RegisterRoutes mounts GET /dashboard.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/dashboard", handler.show)
}

/*
Show renders the landing view.

GET /dashboard

Description: Recommendations post to /search/add with back=/dashboard, so an
added book lands the visitor here again.
*/
func (handler *Handler) show(writer http.ResponseWriter, request *http.Request) {
	current, _ := session.FromContext(request.Context())

	dashboard, err := handler.service.Load(request.Context(), current)
	if handler.pages.Fail(writer, request, err) {
		return
	}

	handler.pages.Render(writer, request, "dashboard", view.Page{Title: "Tableau de bord", Data: dashboard})
}
