// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session owns the visitor's bearer token and everything derived from it.

# Architecture

A [Session] is built once per request (web) or once per command (CLI) from a
store, then handed explicitly to every controller that talks to the remote API.
Only two places write to a store:

  - Login and signup call Save with the token returned by the API.
  - Logout and any UNAUTHORIZED answer call Clear.

The token is never verified here: the remote API is the authority. The claims
are only read to drop a session whose "exp" is already in the past.
*/
package session

import (
	"context"
	"time"

	"github.com/taibuivan/etagere/internal/platform/ctxkey"
	"github.com/taibuivan/etagere/internal/platform/sec"
)

// Session is the authenticated state of one visitor.
type Session struct {
	Token  string
	Claims sec.TokenClaims
}

// FromToken builds a Session from a stored token.
//
// ok is false when the token is blank or its exp claim is before now.
func FromToken(token string, now time.Time) (Session, bool) {
	claims, ok := sec.Inspect(token)
	if !ok || claims.Expired(now) {
		return Session{}, false
	}
	return Session{Token: token, Claims: claims}, true
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// UserID returns the "sub" claim, empty for opaque tokens.
func (s Session) UserID() string {
	return s.Claims.Subject
}

// # Context

// WithContext attaches s to ctx.
func WithContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxkey.KeySession, s)
}

// FromContext returns the session attached by the session middleware.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxkey.KeySession).(Session)
	return s, ok && s.Authenticated()
}
