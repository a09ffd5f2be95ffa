// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/internal/platform/constants"
	"github.com/taibuivan/etagere/internal/platform/ctxutil"
	"github.com/taibuivan/etagere/internal/platform/flash"
	"github.com/taibuivan/etagere/internal/platform/view"
	"github.com/taibuivan/etagere/internal/session"
)

// SessionClearer removes the stored session token.
type SessionClearer interface {
	Clear(writer http.ResponseWriter)
}

// Pages renders HTML pages and applies the error taxonomy.
type Pages struct {
	renderer *view.Renderer
	sessions SessionClearer
}

// NewPages creates a [Pages] responder.
func NewPages(renderer *view.Renderer, sessions SessionClearer) *Pages {
	return &Pages{renderer: renderer, sessions: sessions}
}

// # Rendering

// Render writes page name with status 200.
func (pages *Pages) Render(writer http.ResponseWriter, request *http.Request, name string, page view.Page) {
	pages.RenderStatus(writer, request, http.StatusOK, name, page)
}

// RenderStatus writes page name with the given status.
//
// Navigation is derived from the request context. A pending flash message is
// shown unless the page already carries a notice of its own.
func (pages *Pages) RenderStatus(writer http.ResponseWriter, request *http.Request, status int, name string, page view.Page) {
	page.Nav = navigation(request)
	if pending := flash.Pop(writer, request); page.Flash == nil {
		page.Flash = pending
	}

	var buffer bytes.Buffer
	if err := pages.renderer.Render(&buffer, name, page); err != nil {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "template_render_failed",
			slog.String("page", name),
			slog.String("error", err.Error()),
		)
		http.Error(writer, apperr.MessageInternal, http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = buffer.WriteTo(writer)
}

// Fragment writes a single block of page name, used by live updates.
func (pages *Pages) Fragment(writer http.ResponseWriter, request *http.Request, name, block string, data any) {
	var buffer bytes.Buffer
	if err := pages.renderer.Fragment(&buffer, name, block, data); err != nil {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "template_render_failed",
			slog.String("page", name),
			slog.String("block", block),
			slog.String("error", err.Error()),
		)
		http.Error(writer, apperr.MessageInternal, http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buffer.WriteTo(writer)
}

// Confirm renders the two-step confirmation page.
func (pages *Pages) Confirm(writer http.ResponseWriter, request *http.Request, confirmation view.Confirmation) {
	pages.Render(writer, request, "confirm", view.Page{Title: confirmation.Title, Data: confirmation})
}

// Forbidden renders the access-denied page.
func (pages *Pages) Forbidden(writer http.ResponseWriter, request *http.Request, message string) {
	if message == "" {
		message = apperr.MessageForbidden
	}
	pages.RenderStatus(writer, request, http.StatusForbidden, "forbidden", view.Page{
		Title: apperr.MessageForbidden,
		Data:  message,
	})
}

// ForbiddenHandler adapts [Pages.Forbidden] for middleware.
func (pages *Pages) ForbiddenHandler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		pages.Forbidden(writer, request, "")
	})
}

// # Navigation

// Redirect sends the visitor to target with 303 See Other.
func (pages *Pages) Redirect(writer http.ResponseWriter, request *http.Request, target string) {
	http.Redirect(writer, request, target, http.StatusSeeOther)
}

// Success flashes message and redirects to target.
func (pages *Pages) Success(writer http.ResponseWriter, request *http.Request, message, target string) {
	flash.Success(writer, message)
	pages.Redirect(writer, request, target)
}

// # Errors

// Error applies the error taxonomy after a failed action, then redirects back.
func (pages *Pages) Error(writer http.ResponseWriter, request *http.Request, err error, back string) {
	if pages.Fail(writer, request, err) {
		return
	}

	flash.Error(writer, apperr.UserMessage(err, apperr.MessageInternal))
	pages.Redirect(writer, request, back)
}

// Invalid re-renders a form page with message as an error notice.
func (pages *Pages) Invalid(writer http.ResponseWriter, request *http.Request, name string, page view.Page, message string) {
	page.Flash = &flash.Message{Kind: flash.KindError, Text: message}
	pages.RenderStatus(writer, request, http.StatusUnprocessableEntity, name, page)
}

// FormError applies the error taxonomy to a failed form, re-rendering the
// form with the error text when the view survives.
func (pages *Pages) FormError(writer http.ResponseWriter, request *http.Request, name string, page view.Page, err error) {
	if pages.Fail(writer, request, err) {
		return
	}
	pages.Invalid(writer, request, name, page, apperr.UserMessage(err, apperr.MessageInternal))
}

// Fail handles the errors that end the current view: session loss, access
// denial and abandoned requests. It reports whether a response was written.
//
// Other errors are left to the caller, which usually shows them inline.
func (pages *Pages) Fail(writer http.ResponseWriter, request *http.Request, err error) bool {
	if err == nil {
		return false
	}

	logger := ctxutil.GetLogger(request.Context())

	switch {
	case errors.Is(err, context.Canceled):
		logger.DebugContext(request.Context(), "request_abandoned")
		return true

	case apperr.IsUnauthorized(err):
		pages.ExpireSession(writer, request)
		return true

	case apperr.IsForbidden(err):
		pages.Forbidden(writer, request, apperr.UserMessage(err, apperr.MessageForbidden))
		return true
	}

	Log(request.Context(), err)
	return false
}

// ExpireSession clears the stored token and sends the visitor to the login page.
func (pages *Pages) ExpireSession(writer http.ResponseWriter, request *http.Request) {
	pages.sessions.Clear(writer)
	flash.Info(writer, apperr.MessageSession)
	pages.Redirect(writer, request, constants.LoginPath)
}

// Log records a non-fatal error at a level matching its code.
func Log(ctx context.Context, err error) {
	logger := ctxutil.GetLogger(ctx)

	appError := apperr.As(err)
	if appError == nil {
		logger.ErrorContext(ctx, "unhandled_error_swallowed", slog.String("error", err.Error()))
		return
	}

	attributes := []any{
		slog.String("code", appError.Code),
		slog.Int("upstream_status", appError.HTTPStatus),
	}
	if appError.Cause != nil {
		attributes = append(attributes, slog.String("cause", appError.Cause.Error()))
	}

	switch appError.Code {
	case apperr.CodeUpstream, apperr.CodeNetwork, apperr.CodeInternal:
		logger.ErrorContext(ctx, "api_call_failed", attributes...)
	default:
		logger.InfoContext(ctx, "api_call_rejected", attributes...)
	}
}

// navigation derives the nav bar state from the request context.
func navigation(request *http.Request) view.Nav {
	nav := view.Nav{Active: activeSection(request.URL.Path)}

	if _, ok := session.FromContext(request.Context()); ok {
		nav.Authenticated = true
	}
	if identity := session.IdentityFrom(request.Context()); identity != nil {
		nav.Username = identity.Username
		nav.IsAdmin = identity.IsAdmin
	}

	return nav
}

// activeSection maps a path to the nav entry it belongs to.
func activeSection(path string) string {
	segments := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)
	return segments[0]
}

// LocalPath returns target when it is a path on this site, fallback otherwise.
// It guards redirect targets taken from forms.
func LocalPath(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	return target
}
