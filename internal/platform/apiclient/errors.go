// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/taibuivan/etagere/internal/platform/apperr"
)

// errorBody is the error document of the remote API.
// Detail is either a string or a list of field errors.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// fieldDetail is one entry of a list-shaped detail.
type fieldDetail struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// decodeError maps a non-2xx answer onto the error taxonomy.
//
//	401 -> UNAUTHORIZED
//	403 -> FORBIDDEN
//	404 -> NOT_FOUND
//	409 -> CONFLICT
//	400/422 with a list detail -> VALIDATION_ERROR
//	anything else -> UPSTREAM_ERROR
func decodeError(status int, payload []byte) *apperr.AppError {
	message, details := parseDetail(payload)

	switch {
	case status == http.StatusUnauthorized:
		return apperr.Unauthorized(orDefault(message, apperr.MessageSession))
	case status == http.StatusForbidden:
		return apperr.Forbidden(message)
	case status == http.StatusNotFound:
		return apperr.NotFound(orDefault(message, "Ressource introuvable"))
	case status == http.StatusConflict:
		return apperr.Conflict(orDefault(message, "Cette ressource existe déjà"))
	case (status == http.StatusBadRequest || status == http.StatusUnprocessableEntity) && len(details) > 0:
		validation := apperr.ValidationError("", details...)
		validation.HTTPStatus = status
		return validation
	default:
		return apperr.Upstream(status, message)
	}
}

// parseDetail extracts either a plain message or field errors from the body.
func parseDetail(payload []byte) (string, []apperr.FieldError) {
	var body errorBody
	if err := json.Unmarshal(payload, &body); err != nil || len(body.Detail) == 0 {
		return "", nil
	}

	var text string
	if err := json.Unmarshal(body.Detail, &text); err == nil {
		return strings.TrimSpace(text), nil
	}

	var list []fieldDetail
	if err := json.Unmarshal(body.Detail, &list); err != nil {
		return "", nil
	}

	details := make([]apperr.FieldError, 0, len(list))
	for _, entry := range list {
		details = append(details, apperr.FieldError{
			Field:   fieldName(entry.Loc),
			Message: entry.Msg,
		})
	}

	return "", details
}

// fieldName picks the last location segment, skipping the "body" / "query" prefix.
func fieldName(loc []any) string {
	for i := len(loc) - 1; i >= 0; i-- {
		segment := fmt.Sprint(loc[i])
		switch segment {
		case "body", "query", "path", "header":
			continue
		}
		return segment
	}
	return ""
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
