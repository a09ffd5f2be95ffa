// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It hides the router's parameter extraction and the context plumbing of the
session guard, so handlers read identifiers and the current session the same
way everywhere.
*/
package requestutil

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/etagere/internal/session"
	"github.com/taibuivan/etagere/pkg/convert"
)

/*
ID reads a named URL parameter as a positive integer identifier.

Returns:
  - int: the identifier
  - bool: false when the parameter is missing, not a number or below 1
*/
func ID(request *http.Request, name string) (int, bool) {
	return convert.ToID(chi.URLParam(request, name))
}

/*
Param retrieves a named URL parameter from the request, trimmed.
*/
func Param(request *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(request, name))
}

/*
Session returns the session the guard attached to the request.

Behind the guard it is always set; elsewhere the zero Session is returned and
[session.Session.Authenticated] reports false.
*/
func Session(request *http.Request) session.Session {
	current, _ := session.FromContext(request.Context())
	return current
}
