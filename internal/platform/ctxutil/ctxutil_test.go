// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/etagere/internal/platform/ctxutil"
	"github.com/taibuivan/etagere/internal/platform/webtest"
)

/*
TestRequestID is empty outside a request and round-trips inside one.
*/
func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "page-view-1")
	assert.Equal(t, "page-view-1", ctxutil.GetRequestID(ctx))
}

/*
TestGetLogger prefers the request logger over the default one.
*/
func TestGetLogger(t *testing.T) {
	ctx := context.Background()
	assert.Same(t, ctxutil.GetLogger(ctx), ctxutil.GetLogger(ctx))

	logger := webtest.Logger()
	assert.Same(t, logger, ctxutil.GetLogger(ctxutil.WithLogger(ctx, logger)))
}
