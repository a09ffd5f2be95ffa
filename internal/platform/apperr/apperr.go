// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for Etagere.

Every failure that crosses a layer boundary (remote API, controller, view) is an
[AppError]. The remote API client decodes non-2xx responses into one, and the web
layer and terminal client decide what to show from its Code alone.

Taxonomy:

  - UNAUTHORIZED: the session is no longer accepted; it is cleared and the user re-authenticates.
  - FORBIDDEN: the user is authenticated but not allowed; an access-denied view is shown.
  - CONFLICT / NOT_FOUND / VALIDATION_ERROR: the server explained the refusal; its text is shown.
  - UPSTREAM_ERROR: any other non-2xx answer from the remote API.
  - NETWORK_ERROR: the remote API could not be reached at all.

Messages are written for the reader of the page, in French.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// # Error Codes

const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUpstream     = "UPSTREAM_ERROR"
	CodeNetwork      = "NETWORK_ERROR"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
)

// # Default Messages

const (
	MessageForbidden = "Accès interdit"
	MessageNetwork   = "Impossible de joindre le serveur. Réessayez plus tard."
	MessageInternal  = "Une erreur inattendue est survenue"
	MessageSession   = "Session expirée, veuillez vous reconnecter"
)

// AppError is the canonical error type for the Etagere front-end.
//
// It carries an HTTP status code, a machine-readable code, a user-facing
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never rendered.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONFLICT").
	Code string `json:"code"`
	// Message is a human-readable description safe to show to the user.
	Message string `json:"error"`
	// HTTPStatus is the status the remote API answered with (0 for transport failures).
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the name of the field that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the user-facing message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] with the given message.
func NotFound(msg string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    msg,
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError]. An empty message falls back to [MessageForbidden].
func Forbidden(msg string) *AppError {
	if msg == "" {
		msg = MessageForbidden
	}
	return &AppError{
		Code:       CodeForbidden,
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict creates a 409 [AppError] for duplicates.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
//
// When msg is empty the details are joined into one readable sentence.
func ValidationError(msg string, details ...FieldError) *AppError {
	if msg == "" {
		msg = JoinDetails(details)
	}
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Trop de requêtes. Réessayez dans %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Remote Errors

// Upstream creates an [AppError] for a non-2xx answer that has no dedicated code.
func Upstream(status int, msg string) *AppError {
	if msg == "" {
		msg = fmt.Sprintf("Le serveur a répondu %d", status)
	}
	return &AppError{
		Code:       CodeUpstream,
		Message:    msg,
		HTTPStatus: status,
	}
}

// Network creates an [AppError] for a request that never got an answer.
func Network(cause error) *AppError {
	return &AppError{
		Code:    CodeNetwork,
		Message: MessageNetwork,
		Cause:   cause,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected error.
// The cause is stored for logging but is never shown to the user.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    MessageInternal,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}

// IsUnauthorized reports whether err means the session must be discarded.
func IsUnauthorized(err error) bool { return HasCode(err, CodeUnauthorized) }

// IsForbidden reports whether err means the action is not allowed for this user.
func IsForbidden(err error) bool { return HasCode(err, CodeForbidden) }

// IsConflict reports whether err is a 409 from the remote API.
func IsConflict(err error) bool { return HasCode(err, CodeConflict) }

// UserMessage returns the text to show for err, or fallback when err carries none.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if ae := As(err); ae != nil && ae.Message != "" {
		return ae.Message
	}
	return fallback
}

// JoinDetails renders field errors as a single "field: message; field: message" line.
func JoinDetails(details []FieldError) string {
	parts := make([]string, 0, len(details))
	for _, detail := range details {
		if detail.Field == "" {
			parts = append(parts, detail.Message)
			continue
		}
		parts = append(parts, detail.Field+": "+detail.Message)
	}
	return strings.Join(parts, "; ")
}
