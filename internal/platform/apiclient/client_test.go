// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/etagere/internal/platform/apiclient"
	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/internal/platform/ctxutil"
)

func newClient(t *testing.T, handler http.HandlerFunc) *apiclient.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := apiclient.New(server.URL, 2*time.Second)
	require.NoError(t, err)
	return client
}

/*
TestClient_SendsHeadersAndBody verifies bearer injection, request ID and JSON encoding.
*/
func TestClient_SendsHeadersAndBody(t *testing.T) {
	client := newClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/books/", request.URL.Path)
		assert.Equal(t, "Bearer tok-1", request.Header.Get("Authorization"))
		assert.Equal(t, "req-9", request.Header.Get("X-Request-ID"))
		assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "Dune", body["title"])

		writer.WriteHeader(http.StatusCreated)
		_, _ = writer.Write([]byte(`{"id": 7, "title": "Dune"}`))
	})

	ctx := ctxutil.WithRequestID(context.Background(), "req-9")

	var created struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	}
	err := client.Post(ctx, "tok-1", "/books/", map[string]string{"title": "Dune"}, &created)

	require.NoError(t, err)
	assert.Equal(t, 7, created.ID)
}

/*
TestClient_AnonymousRequest ensures no Authorization header without a token.
*/
func TestClient_AnonymousRequest(t *testing.T) {
	client := newClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Empty(t, request.Header.Get("Authorization"))
		assert.Equal(t, "lea@example.com", request.URL.Query().Get("email"))
		writer.WriteHeader(http.StatusNoContent)
	})

	err := client.Get(context.Background(), "", "/ping", url.Values{"email": {"lea@example.com"}}, nil)
	assert.NoError(t, err)
}

/*
TestClient_ErrorTaxonomy maps remote statuses onto error codes.
*/
func TestClient_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    string
		wantMessage string
	}{
		{"unauthorized", 401, `{"detail":"Could not validate credentials"}`, apperr.CodeUnauthorized, "Could not validate credentials"},
		{"unauthorized_empty", 401, ``, apperr.CodeUnauthorized, apperr.MessageSession},
		{"forbidden", 403, `{}`, apperr.CodeForbidden, "Accès interdit"},
		{"not_found", 404, `{"detail":"Livre introuvable"}`, apperr.CodeNotFound, "Livre introuvable"},
		{"conflict", 409, `{"detail":"Livre déjà dans la bibliothèque"}`, apperr.CodeConflict, "Livre déjà dans la bibliothèque"},
		{
			"validation_list", 422,
			`{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address","type":"value_error"}]}`,
			apperr.CodeValidation, "email: value is not a valid email address",
		},
		{"bad_request_text", 400, `{"detail":"Email déjà utilisé"}`, apperr.CodeUpstream, "Email déjà utilisé"},
		{"server_error", 500, `oops`, apperr.CodeUpstream, "Le serveur a répondu 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, func(writer http.ResponseWriter, _ *http.Request) {
				writer.WriteHeader(tt.status)
				_, _ = writer.Write([]byte(tt.body))
			})

			err := client.Get(context.Background(), "tok", "/books/mine", nil, nil)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
			assert.Equal(t, tt.wantMessage, ae.Message)
			assert.Equal(t, tt.status, ae.HTTPStatus)
		})
	}
}

/*
TestClient_NetworkFailure reports unreachable servers as NETWORK_ERROR.
*/
func TestClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	address := server.URL
	server.Close()

	client, err := apiclient.New(address, time.Second)
	require.NoError(t, err)

	err = client.Get(context.Background(), "", "/auth/me", nil, nil)
	assert.True(t, apperr.HasCode(err, apperr.CodeNetwork))
	assert.Equal(t, apperr.MessageNetwork, apperr.UserMessage(err, ""))
}

/*
TestClient_CancelledContext returns the context error, not a network error.
*/
func TestClient_CancelledContext(t *testing.T) {
	release := make(chan struct{})
	client := newClient(t, func(writer http.ResponseWriter, request *http.Request) {
		select {
		case <-release:
		case <-request.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := client.Get(ctx, "tok", "/auth/me", nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, apperr.IsAppError(err))
}
