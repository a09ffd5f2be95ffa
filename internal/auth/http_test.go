// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/etagere/internal/auth"
	"github.com/taibuivan/etagere/internal/platform/flash"
	"github.com/taibuivan/etagere/internal/platform/webtest"
)

// newRouter wires the handler against a fake backend.
func newRouter(t *testing.T, backend http.HandlerFunc) http.Handler {
	t.Helper()

	client := webtest.Backend(t, backend)
	pages, store := webtest.Pages(t)
	handler := auth.NewHandler(auth.NewService(auth.NewRemoteGateway(client), webtest.Logger()), pages, store)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	router.Post("/logout", handler.Logout)
	return router
}

/*
TestLogin_StoresTokenAndRedirects covers the happy path of the login form.
*/
func TestLogin_StoresTokenAndRedirects(t *testing.T) {
	router := newRouter(t, func(writer http.ResponseWriter, request *http.Request) {
		require.Equal(t, "/auth/login", request.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "lea@example.fr", body["email"])

		webtest.JSON(writer, http.StatusOK, map[string]string{"access_token": "jwt-1", "token_type": "bearer"})
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, webtest.Anonymous(webtest.Form("/login", url.Values{
		"email":    {"lea@example.fr"},
		"password": {"secret"},
	})))

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/dashboard", recorder.Header().Get("Location"))
	cookie := webtest.TokenCookie(recorder)
	require.NotNil(t, cookie)
	assert.Equal(t, "jwt-1", cookie.Value)
}

/*
TestLogin_RejectedShowsServerText keeps the visitor on the form.
*/
func TestLogin_RejectedShowsServerText(t *testing.T) {
	router := newRouter(t, func(writer http.ResponseWriter, _ *http.Request) {
		webtest.Detail(writer, http.StatusUnauthorized, "Identifiants invalides")
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, webtest.Anonymous(webtest.Form("/login", url.Values{
		"email":    {"lea@example.fr"},
		"password": {"nope"},
	})))

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Identifiants invalides")
	assert.Contains(t, recorder.Body.String(), `value="lea@example.fr"`)
	assert.Nil(t, webtest.TokenCookie(recorder))
}

/*
TestSignup_LogsInAfterCreation chains POST /users/ and POST /auth/login.
*/
func TestSignup_LogsInAfterCreation(t *testing.T) {
	var paths []string
	router := newRouter(t, func(writer http.ResponseWriter, request *http.Request) {
		paths = append(paths, request.URL.Path)
		switch request.URL.Path {
		case "/users/":
			webtest.JSON(writer, http.StatusOK, map[string]any{"id": 3, "username": "lea"})
		case "/auth/login":
			webtest.JSON(writer, http.StatusOK, map[string]string{"access_token": "jwt-2"})
		}
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, webtest.Anonymous(webtest.Form("/signup", url.Values{
		"username": {"lea"},
		"email":    {"lea@example.fr"},
		"password": {"secret"},
	})))

	assert.Equal(t, []string{"/users/", "/auth/login"}, paths)
	assert.Equal(t, "/dashboard", recorder.Header().Get("Location"))
	assert.Equal(t, "jwt-2", webtest.TokenCookie(recorder).Value)
}

/*
TestForgotPassword_NeutralConfirmation shows the same text when the account is unknown.
*/
func TestForgotPassword_NeutralConfirmation(t *testing.T) {
	router := newRouter(t, func(writer http.ResponseWriter, _ *http.Request) {
		webtest.Detail(writer, http.StatusNotFound, "Utilisateur introuvable")
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, webtest.Anonymous(webtest.Form("/forgot-password", url.Values{"email": {"x@y.fr"}})))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), auth.MessageForgotSent)
	assert.NotContains(t, recorder.Body.String(), "Utilisateur introuvable")
}

/*
TestResetPassword covers the link guard, the mismatch guard and success.
*/
func TestResetPassword(t *testing.T) {
	calls := 0
	router := newRouter(t, func(writer http.ResponseWriter, request *http.Request) {
		calls++
		var body map[string]string
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "tok-9", body["token"])
		assert.Equal(t, "n3w", body["new_password"])
		writer.WriteHeader(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, webtest.Anonymous(httptest.NewRequest(http.MethodGet, "/reset-password", nil)))
	assert.Contains(t, recorder.Body.String(), auth.MessageInvalidLink)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, webtest.Anonymous(webtest.Form("/reset-password", url.Values{
		"token": {"tok-9"}, "password": {"n3w"}, "confirm": {"other"},
	})))
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Equal(t, 0, calls)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, webtest.Anonymous(webtest.Form("/reset-password", url.Values{
		"token": {"tok-9"}, "password": {"n3w"}, "confirm": {"n3w"},
	})))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "/login", recorder.Header().Get("Location"))
	assert.Equal(t, &flash.Message{Kind: flash.KindSuccess, Text: auth.MessagePasswordUpdated}, webtest.Flash(recorder))
}

/*
TestLogout clears the cookie.
*/
func TestLogout(t *testing.T) {
	router := newRouter(t, func(http.ResponseWriter, *http.Request) {})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, webtest.Form("/logout", nil))

	assert.Equal(t, "/login", recorder.Header().Get("Location"))
	cookie := webtest.TokenCookie(recorder)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}
