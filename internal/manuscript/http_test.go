// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manuscript_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/etagere/internal/manuscript"
	"github.com/taibuivan/etagere/internal/platform/webtest"
)

func newRouter(t *testing.T, backend *manuscriptBackend) http.Handler {
	t.Helper()

	pages, _ := webtest.Pages(t)
	router := chi.NewRouter()
	manuscript.NewHandler(backend.service(t), pages).RegisterRoutes(router)
	return router
}

/*
TestManuscriptPage renders the chapters in order with the editor.
*/
func TestManuscriptPage(t *testing.T) {
	recorder := httptest.NewRecorder()
	newRouter(t, &manuscriptBackend{manuscript: novel()}).ServeHTTP(recorder, webtest.Get("/manuscripts/9"))

	body := recorder.Body.String()
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Less(t, strings.Index(body, "<h2>Un</h2>"), strings.Index(body, "<h2>Deux</h2>"))
	assert.Less(t, strings.Index(body, "<h2>Trois</h2>"), strings.Index(body, "<h2>Sans ordre</h2>"))
	assert.Contains(t, body, "<b>Il était</b> une fois")
	assert.Contains(t, body, `action="/manuscripts/9/chapters"`)
	assert.Contains(t, body, `data-editor="chapter-content"`)
	assert.Contains(t, body, `/static/editor.js`)
	assert.Contains(t, body, `name="chapter_ids" value="3"`)
}

/*
TestManuscriptPage_NotFound goes back to the list with the backend message.
*/
func TestManuscriptPage_NotFound(t *testing.T) {
	recorder := httptest.NewRecorder()
	newRouter(t, &manuscriptBackend{}).ServeHTTP(recorder, webtest.Get("/manuscripts/9"))

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/manuscripts", recorder.Header().Get("Location"))
	assert.Equal(t, "Manuscript not found", webtest.Flash(recorder).Text)
}

/*
TestCreate_Handler opens the new manuscript or keeps the form on error.
*/
func TestCreate_Handler(t *testing.T) {
	backend := &manuscriptBackend{manuscript: novel()}
	router := newRouter(t, backend)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, webtest.Form("/manuscripts", url.Values{"title": {"Roman"}}))
	assert.Equal(t, "/manuscripts/42", recorder.Header().Get("Location"))
	assert.Equal(t, manuscript.MessageCreated, webtest.Flash(recorder).Text)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, webtest.Form("/manuscripts", url.Values{"title": {" "}, "description": {"Brouillon"}}))
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Brouillon")
	assert.Contains(t, recorder.Body.String(), "Mon roman")
}

/*
TestEditChapter pre-fills the form and posts to the edit route.
*/
func TestEditChapter(t *testing.T) {
	router := newRouter(t, &manuscriptBackend{manuscript: novel()})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, webtest.Get("/manuscripts/9/chapters/3/edit"))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `action="/manuscripts/9/chapters/3/edit"`)
	assert.Contains(t, recorder.Body.String(), `value="Trois"`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, webtest.Get("/manuscripts/9/chapters/99/edit"))
	assert.Equal(t, "/manuscripts/9", recorder.Header().Get("Location"))
	assert.Equal(t, manuscript.MessageUnknownChapter, webtest.Flash(recorder).Text)
}

/*
TestSaveChapter_Handler flashes the outcome or re-renders the rejected chapter.
*/
func TestSaveChapter_Handler(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		content   string
		wantCode  int
		wantFlash string
		wantCall  string
	}{
		{"create", "/manuscripts/9/chapters", "<p>Texte</p>", http.StatusSeeOther, manuscript.MessageChapterAdded, "POST /manuscripts/9/chapters"},
		{"update", "/manuscripts/9/chapters/3/edit", "<p>Texte</p>", http.StatusSeeOther, manuscript.MessageChapterSaved, "PATCH /manuscripts/chapters/3"},
		{"blank", "/manuscripts/9/chapters", "<p> </p>", http.StatusUnprocessableEntity, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &manuscriptBackend{manuscript: novel()}

			recorder := httptest.NewRecorder()
			newRouter(t, backend).ServeHTTP(recorder, webtest.Form(tt.target, url.Values{
				"title":   {"Épilogue"},
				"content": {tt.content},
			}))

			assert.Equal(t, tt.wantCode, recorder.Code)
			if tt.wantFlash == "" {
				assert.Contains(t, recorder.Body.String(), manuscript.MessageEmptyChapter)
				assert.Contains(t, recorder.Body.String(), `value="Épilogue"`)
				return
			}
			assert.Equal(t, "/manuscripts/9", recorder.Header().Get("Location"))
			assert.Equal(t, tt.wantFlash, webtest.Flash(recorder).Text)
			assert.Contains(t, backend.calls, tt.wantCall)
		})
	}
}

/*
TestDelete_Handlers confirm first and only delete on "yes".
*/
func TestDelete_Handlers(t *testing.T) {
	backend := &manuscriptBackend{manuscript: novel()}
	router := newRouter(t, backend)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, webtest.Get("/manuscripts/9/chapters/3/delete"))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `action="/manuscripts/9/chapters/3/delete"`)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, webtest.Form("/manuscripts/9/chapters/3/delete", url.Values{}))
	assert.Equal(t, "/manuscripts/9", recorder.Header().Get("Location"))
	assert.NotContains(t, backend.calls, "DELETE /manuscripts/chapters/3")

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, webtest.Form("/manuscripts/9/chapters/3/delete", url.Values{"confirm": {"yes"}}))
	assert.Equal(t, manuscript.MessageChapterDeleted, webtest.Flash(recorder).Text)
	assert.Contains(t, backend.calls, "DELETE /manuscripts/chapters/3")

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, webtest.Form("/manuscripts/9/delete", url.Values{"confirm": {"yes"}}))
	assert.Equal(t, "/manuscripts", recorder.Header().Get("Location"))
	assert.Equal(t, manuscript.MessageDeleted, webtest.Flash(recorder).Text)
	assert.Contains(t, backend.calls, "DELETE /manuscripts/9")
}

/*
TestShare_Handler reports the recipient count or keeps the form values.
*/
func TestShare_Handler(t *testing.T) {
	tests := []struct {
		name        string
		form        url.Values
		wantCode    int
		wantMessage string
	}{
		{
			name:        "whole",
			form:        url.Values{"recipients": {"lea@example.com, marc@example.com"}, "scope": {"all"}},
			wantCode:    http.StatusSeeOther,
			wantMessage: manuscript.MessageShared + " à 2 destinataire(s)",
		},
		{
			name:        "selection_without_chapters",
			form:        url.Values{"recipients": {"lea@example.com"}, "scope": {"selection"}},
			wantCode:    http.StatusUnprocessableEntity,
			wantMessage: manuscript.MessageNoChapter,
		},
		{
			name:        "bad_address",
			form:        url.Values{"recipients": {"lea@example.com nobody"}, "scope": {"selection"}, "chapter_ids": {"1", "2"}},
			wantCode:    http.StatusUnprocessableEntity,
			wantMessage: manuscript.MessageBadRecipient + "nobody",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &manuscriptBackend{manuscript: novel()}

			recorder := httptest.NewRecorder()
			newRouter(t, backend).ServeHTTP(recorder, webtest.Form("/manuscripts/9/share", tt.form))

			assert.Equal(t, tt.wantCode, recorder.Code)
			if tt.wantCode == http.StatusSeeOther {
				assert.Equal(t, tt.wantMessage, webtest.Flash(recorder).Text)
				assert.Contains(t, backend.calls, "POST /manuscripts/9/share")
				return
			}

			body := recorder.Body.String()
			assert.Contains(t, body, tt.wantMessage)
			assert.Contains(t, body, tt.form.Get("recipients"))
			assert.NotContains(t, backend.calls, "POST /manuscripts/9/share")
		})
	}
}
