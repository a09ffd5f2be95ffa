// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec inspects the bearer token issued by the remote API.
//
// # Architecture
//
// The front-end never holds the signing key: the remote API is the only party
// that verifies tokens. What this package offers is a read of the claims so
// that an obviously expired session is dropped before any request is wasted
// on it. Tokens that are not JWTs are accepted as opaque.
package sec

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the unverified view of a session token.
type TokenClaims struct {
	// Subject is the "sub" claim (the user id for tokens issued by the API).
	Subject string

	// ExpiresAt is the "exp" claim. Zero when the token carries none.
	ExpiresAt time.Time

	// Opaque is true when the token could not be read as a JWT.
	Opaque bool
}

// parser reads claims without checking signature or expiry.
var parser = jwt.NewParser(jwt.WithoutClaimsValidation())

// Inspect decodes the claims of raw without verifying the signature.
//
// A blank token returns ok=false. A non-JWT token returns ok=true with Opaque set.
func Inspect(raw string) (TokenClaims, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TokenClaims{}, false
	}

	registered := &jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(raw, registered); err != nil {
		return TokenClaims{Opaque: true}, true
	}

	claims := TokenClaims{Subject: registered.Subject}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}

	return claims, true
}

// Expired reports whether the exp claim lies before now.
// Tokens without an exp claim never expire from the front-end's point of view.
func (c TokenClaims) Expired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(c.ExpiresAt)
}
