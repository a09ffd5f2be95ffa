// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package webtest holds the fixtures shared by the handler tests: a fake remote
API, the page responder and helpers to read what a response left behind.

It is only imported from _test.go files.
*/
package webtest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/etagere/internal/platform/apiclient"
	"github.com/taibuivan/etagere/internal/platform/constants"
	"github.com/taibuivan/etagere/internal/platform/flash"
	"github.com/taibuivan/etagere/internal/platform/respond"
	"github.com/taibuivan/etagere/internal/platform/view"
	"github.com/taibuivan/etagere/internal/session"
)

// Token is the bearer every authenticated fixture request carries.
const Token = "test-token"

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Backend starts a fake remote API and returns a client pointed at it.
func Backend(t *testing.T, handler http.Handler) *apiclient.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := apiclient.New(server.URL, 2*time.Second)
	require.NoError(t, err)
	return client
}

// Pages builds the real page responder over the embedded templates.
func Pages(t *testing.T) (*respond.Pages, *session.CookieStore) {
	t.Helper()

	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	store := session.NewCookieStore(false)
	return respond.NewPages(renderer, store), store
}

// JSON writes v with the given status.
func JSON(writer http.ResponseWriter, status int, v any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(v)
}

// Detail writes a remote error document.
func Detail(writer http.ResponseWriter, status int, detail any) {
	JSON(writer, status, map[string]any{"detail": detail})
}

// Get builds an authenticated GET request.
func Get(target string) *http.Request {
	return Authenticated(httptest.NewRequest(http.MethodGet, target, nil))
}

// Form builds an authenticated form POST.
func Form(target string, values url.Values) *http.Request {
	request := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return Authenticated(request)
}

// Anonymous strips the session from request.
func Anonymous(request *http.Request) *http.Request {
	return request.WithContext(session.WithContext(request.Context(), session.Session{}))
}

// Authenticated attaches a session carrying [Token].
func Authenticated(request *http.Request) *http.Request {
	ctx := session.WithContext(request.Context(), session.Session{Token: Token})
	return request.WithContext(ctx)
}

// Flash returns the notification queued by a response, or nil.
func Flash(recorder *httptest.ResponseRecorder) *flash.Message {
	var last *http.Cookie
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == constants.FlashCookieName && cookie.Value != "" {
			last = cookie
		}
	}
	if last == nil {
		return nil
	}

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(last)
	return flash.Pop(httptest.NewRecorder(), request)
}

// TokenCookie returns the session cookie set by a response, or nil.
func TokenCookie(recorder *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == constants.SessionCookieName {
			return cookie
		}
	}
	return nil
}
