// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/internal/platform/constants"
	"github.com/taibuivan/etagere/internal/platform/ctxutil"
	"github.com/taibuivan/etagere/internal/platform/flash"
	"github.com/taibuivan/etagere/internal/session"
)

// TokenStore reads and clears the session token kept by the browser.
type TokenStore interface {
	Load(request *http.Request) string
	Clear(writer http.ResponseWriter)
}

// LoadSession turns the stored token into a [session.Session] on the context.
//
// # Flow
//  1. No token: the request proceeds as anonymous.
//  2. Token whose exp claim has passed: it is cleared, request proceeds as anonymous.
//  3. Otherwise the session is injected for downstream handlers.
func LoadSession(store TokenStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token := store.Load(request)
			if token == "" {
				next.ServeHTTP(writer, request)
				return
			}

			current, ok := session.FromToken(token, time.Now())
			if !ok {
				store.Clear(writer)
				next.ServeHTTP(writer, request)
				return
			}

			ctx := session.WithContext(request.Context(), current)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireSession sends anonymous visitors to the login page.
//
// # Usage
//
// Must be registered in the router AFTER [LoadSession].
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if _, ok := session.FromContext(request.Context()); !ok {
			http.Redirect(writer, request, constants.LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RedirectAuthenticated sends visitors who already have a session to the dashboard.
// It guards the login and signup pages.
func RedirectAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if _, ok := session.FromContext(request.Context()); ok && request.Method == http.MethodGet {
			http.Redirect(writer, request, constants.HomePath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// Identify fetches the current user from GET /auth/me and attaches it to the context.
//
// # Flow
//  1. The fetch is bound to the request context; a visitor who leaves aborts it.
//  2. UNAUTHORIZED clears the token and redirects to the login page.
//  3. Any other failure is logged and the page renders without an identity.
func Identify(resolver session.Resolver, store TokenStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			current, ok := session.FromContext(request.Context())
			if !ok {
				next.ServeHTTP(writer, request)
				return
			}

			identity, err := resolver.Me(request.Context(), current)
			switch {
			case err == nil:
				ctx := session.WithIdentity(request.Context(), identity)
				next.ServeHTTP(writer, request.WithContext(ctx))

			case errors.Is(err, context.Canceled):
				return

			case apperr.IsUnauthorized(err):
				store.Clear(writer)
				flash.Info(writer, apperr.MessageSession)
				http.Redirect(writer, request, constants.LoginPath, http.StatusSeeOther)

			default:
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "identity_lookup_failed",
					slog.String("error", err.Error()),
				)
				next.ServeHTTP(writer, request)
			}
		})
	}
}

// RequireAdmin lets through only users reported as admins by /auth/me.
//
// # Usage
//
// Must be registered AFTER [Identify]. deny renders the access-denied view.
func RequireAdmin(deny http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := session.IdentityFrom(request.Context())
			if identity == nil || !identity.IsAdmin {
				deny.ServeHTTP(writer, request)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
