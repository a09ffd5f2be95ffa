// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"log/slog"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/internal/platform/constants"
	"github.com/taibuivan/etagere/internal/session"
	"github.com/taibuivan/etagere/pkg/pagination"
	"github.com/taibuivan/etagere/pkg/slice"
)

// # Messages

const (
	MessageActivated    = "Compte activé"
	MessageDeactivated  = "Compte désactivé"
	MessageToggleFailed = "Impossible de mettre à jour l'utilisateur"
	MessageLoadFailed   = "Impossible de charger les utilisateurs"
	MessageUserNotFound = "Utilisateur introuvable"
)

// PageSize is the number of rows per page of the user list.
const PageSize = 20

// Filter is the search state of the user list.
type Filter struct {
	Search string
	Params pagination.Params
}

// FilterFromQuery reads q, page and page_size.
func FilterFromQuery(values url.Values) Filter {
	return Filter{
		Search: strings.TrimSpace(values.Get("q")),
		Params: pagination.FromQuery(values, PageSize, constants.MaxPageSize),
	}
}

// Remote returns the query sent to GET /users. Paging is done locally.
func (filter Filter) Remote() url.Values {
	values := url.Values{}
	if filter.Search != "" {
		values.Set("q", filter.Search)
	}
	return values
}

// URL returns the list address for this filter, used as the back link of
// the row actions.
func (filter Filter) URL() string {
	values := filter.Remote()
	if filter.Params.Page > 1 {
		values.Set("page", strconv.Itoa(filter.Params.Page))
	}
	if len(values) == 0 {
		return "/admin/users"
	}
	return "/admin/users?" + values.Encode()
}

// View is one page of the user list.
type View struct {
	Filter Filter
	Users  []User
	Total  int
}

// Meta returns the pager state.
func (view View) Meta() pagination.Meta {
	return pagination.NewMeta(view.Filter.Params.Page, view.Filter.Params.Limit, view.Total)
}

// Find returns the row for id.
func (view View) Find(id int) (User, bool) {
	index := slices.IndexFunc(view.Users, func(user User) bool { return user.ID == id })
	if index < 0 {
		return User{}, false
	}
	return view.Users[index], true
}

// Service runs the administration operations.
type Service struct {
	gateway Gateway
	logger  *slog.Logger
}

// NewService constructs a [Service].
func NewService(gateway Gateway, logger *slog.Logger) *Service {
	return &Service{gateway: gateway, logger: logger}
}

// List searches the accounts and returns the requested page.
//
// A bare array is the whole result set and is cut locally. An envelope is
// taken as already paged by the backend.
func (service *Service) List(ctx context.Context, current session.Session, filter Filter) (View, error) {
	page, err := service.gateway.List(ctx, current.Token, filter.Remote())
	if err != nil {
		return View{Filter: filter, Users: []User{}}, err
	}

	if page.Bare {
		page.Items = pagination.Slice(page.Items, filter.Params)
	} else {
		page = page.Fit(filter.Params)
	}

	return View{Filter: filter, Users: page.Items, Total: page.Total}, nil
}

// ToggleActive flips the is_active flag of the row id. The server's copy
// replaces the row in place.
func (service *Service) ToggleActive(ctx context.Context, current session.Session, view *View, id int) (User, error) {
	row, found := view.Find(id)
	if !found {
		return User{}, apperr.NotFound(MessageUserNotFound)
	}

	saved, err := service.gateway.SetActive(ctx, current.Token, id, !row.IsActive)
	if err != nil {
		return User{}, err
	}

	view.Users, _ = slice.ReplaceFirst(view.Users, func(user User) bool { return user.ID == id }, saved)

	service.logger.InfoContext(ctx, "user_status_changed",
		slog.Int("user_id", id),
		slog.Bool("is_active", saved.IsActive),
	)
	return saved, nil
}
