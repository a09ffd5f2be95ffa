// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"net/http"
	"time"

	"github.com/taibuivan/etagere/internal/platform/constants"
)

// CookieStore keeps the token in an HttpOnly cookie named "token".
type CookieStore struct {
	// Secure marks the cookie Secure; enable it behind TLS.
	Secure bool
}

// NewCookieStore creates a [CookieStore].
func NewCookieStore(secure bool) *CookieStore {
	return &CookieStore{Secure: secure}
}

// Load returns the stored token, or "" when the visitor has none.
func (store *CookieStore) Load(request *http.Request) string {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Save stores token for subsequent requests.
func (store *CookieStore) Save(writer http.ResponseWriter, token string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(constants.SessionCookieTTL / time.Second),
		HttpOnly: true,
		Secure:   store.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the cookie.
func (store *CookieStore) Clear(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   store.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
