// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ctxutil carries the per-request tracing values through [context.Context].

The request ID set by the middleware follows the request into every remote API
call (as X-Request-ID), so one page view can be matched with the backend logs.
The request logger is already tagged with that ID, method and path.
*/
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/etagere/internal/platform/ctxkey"
)

// # Request Tracing

// WithRequestID attaches the correlation ID of the current page view.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the correlation ID, or "" outside a request (the
// terminal client, background work).
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger attaches the request logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger returns the request logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}
