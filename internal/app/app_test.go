// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package app_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/etagere/internal/app"
	"github.com/taibuivan/etagere/internal/platform/config"
	"github.com/taibuivan/etagere/internal/platform/constants"
	"github.com/taibuivan/etagere/internal/platform/webtest"
)

// remoteAPI answers /auth/me for a plain reader.
func remoteAPI(t *testing.T) *httptest.Server {
	t.Helper()

	router := chi.NewRouter()
	router.Get("/auth/me", func(writer http.ResponseWriter, request *http.Request) {
		if request.Header.Get(constants.HeaderAuthorization) != "Bearer reader-token" {
			webtest.Detail(writer, http.StatusUnauthorized, "Not authenticated")
			return
		}
		webtest.JSON(writer, http.StatusOK, map[string]any{"id": 3, "username": "lea", "is_admin": false, "is_active": true})
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func newApp(t *testing.T, redisURL string) http.Handler {
	t.Helper()

	t.Setenv("API_BASE_URL", remoteAPI(t).URL)
	t.Setenv("REDIS_URL", redisURL)
	cfg, err := config.Parse()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	application, err := app.New(ctx, cfg, webtest.Logger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	return application.Server.Handler()
}

func withToken(request *http.Request, token string) *http.Request {
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: token})
	return request
}

/*
TestRouting checks the guards in front of each route group.
*/
func TestRouting(t *testing.T) {
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name         string
		path         string
		token        string
		wantCode     int
		wantLocation string
	}{
		{"root", "/", "", http.StatusSeeOther, constants.HomePath},
		{"anonymous_member_page", "/dashboard", "", http.StatusSeeOther, constants.LoginPath},
		{"expired_token", "/library", expired, http.StatusSeeOther, constants.LoginPath},
		{"guest_page", "/login", "", http.StatusOK, ""},
		{"guest_page_with_session", "/signup", "reader-token", http.StatusSeeOther, constants.HomePath},
		{"rejected_token", "/manuscripts", "stale-token", http.StatusSeeOther, constants.LoginPath},
		{"admin_as_reader", "/admin/users", "reader-token", http.StatusForbidden, ""},
		{"static", "/static/style.css", "", http.StatusOK, ""},
		{"liveness", "/health", "", http.StatusOK, ""},
	}

	handler := newApp(t, "")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				request = withToken(request, tt.token)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantLocation, recorder.Header().Get("Location"))
			assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))
		})
	}
}

/*
TestReadiness reports the API and Redis, and degrades when Redis goes away.
*/
func TestReadiness(t *testing.T) {
	redis := miniredis.RunT(t)
	handler := newApp(t, "redis://"+redis.Addr())

	var body struct {
		Status string `json:"status"`
		Checks []struct {
			Name string `json:"name"`
			OK   bool   `json:"ok"`
		} `json:"checks"`
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Status)
	require.Len(t, body.Checks, 2)
	assert.Equal(t, "api", body.Checks[0].Name)
	assert.Equal(t, "redis", body.Checks[1].Name)

	redis.Close()

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.False(t, body.Checks[1].OK)
}
