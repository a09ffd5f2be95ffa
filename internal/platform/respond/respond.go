// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides the response helpers used by all handlers.
//
// # Architecture
//
// Pages (HTML) and probes (JSON) leave the server through this package so the
// error taxonomy is applied in exactly one place:
//
//   - UNAUTHORIZED: the session cookie is cleared and the visitor is sent to /login.
//   - FORBIDDEN: the access-denied page is rendered, no redirect.
//   - anything else: the message is flashed and the visitor goes back where they came from.
package respond

import (
	"encoding/json"
	"net/http"
)

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}
