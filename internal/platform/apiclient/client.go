// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apiclient is the single gateway to the remote L'Étagère REST API.

Every screen of the front-end is a view over this API: nothing is persisted
locally. The client injects the bearer token, propagates the request ID, and
turns every non-2xx answer into an [apperr.AppError] so callers only ever
switch on error codes.

Architecture:

  - Transport: net/http with a per-client timeout; no automatic retries.
  - Errors: see [decodeError] for the mapping of statuses to codes.
  - Lists: [GetPage] accepts both response shapes (bare array or envelope).
*/
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/etagere/internal/platform/apperr"
	"github.com/taibuivan/etagere/internal/platform/constants"
	"github.com/taibuivan/etagere/internal/platform/ctxutil"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Client issues authenticated JSON requests against the remote API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New creates a [Client] rooted at baseURL.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("apiclient: invalid base url %q: %w", baseURL, err)
	}

	return &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// BaseURL returns the root the client talks to.
func (client *Client) BaseURL() string {
	return client.baseURL.String()
}

// Ping reports whether the remote API answers at all. Any HTTP status counts
// as reachable; only a transport failure is an error.
func (client *Client) Ping(ctx context.Context) error {
	err := client.Get(ctx, "", "/", nil, nil)
	if err != nil && (apperr.HasCode(err, apperr.CodeNetwork) || ctx.Err() != nil) {
		return err
	}
	return nil
}

// # Verbs

// Get fetches path and decodes the JSON answer into out (which may be nil).
func (client *Client) Get(ctx context.Context, token, path string, query url.Values, out any) error {
	return client.Do(ctx, http.MethodGet, token, path, query, nil, out)
}

// Post sends body as JSON and decodes the answer into out.
func (client *Client) Post(ctx context.Context, token, path string, body, out any) error {
	return client.Do(ctx, http.MethodPost, token, path, nil, body, out)
}

// Patch sends a partial update as JSON and decodes the answer into out.
func (client *Client) Patch(ctx context.Context, token, path string, body, out any) error {
	return client.Do(ctx, http.MethodPatch, token, path, nil, body, out)
}

// Delete removes the resource at path.
func (client *Client) Delete(ctx context.Context, token, path string) error {
	return client.Do(ctx, http.MethodDelete, token, path, nil, nil, nil)
}

// Do performs one round-trip.
//
// An empty token sends an anonymous request. A cancelled ctx returns the
// context error as is, so callers that abandoned the request can tell it apart
// from a network failure.
func (client *Client) Do(ctx context.Context, method, token, path string, query url.Values, body, out any) error {
	request, err := client.newRequest(ctx, method, token, path, query, body)
	if err != nil {
		return apperr.Internal(err)
	}

	logger := ctxutil.GetLogger(ctx)
	start := time.Now()

	response, err := client.httpClient.Do(request)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return ctx.Err()
		}
		logger.WarnContext(ctx, "api_request_failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return apperr.Network(err)
	}
	defer response.Body.Close()

	logger.DebugContext(ctx, "api_request_finished",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", response.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		return decodeError(response.StatusCode, payload)
	}

	if out == nil || response.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperr.Upstream(response.StatusCode, "Réponse du serveur illisible")
	}

	return nil
}

// newRequest builds the outgoing request with auth and tracing headers.
func (client *Client) newRequest(ctx context.Context, method, token, path string, query url.Values, body any) (*http.Request, error) {
	target := client.baseURL.JoinPath(path)
	if strings.HasSuffix(path, "/") && !strings.HasSuffix(target.Path, "/") {
		target.Path += "/"
	}
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("apiclient: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build %s %s: %w", method, path, err)
	}

	request.Header.Set(constants.HeaderAccept, "application/json")
	if body != nil {
		request.Header.Set(constants.HeaderContentType, "application/json")
	}
	if token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}
	if requestID := ctxutil.GetRequestID(ctx); requestID != "" {
		request.Header.Set(constants.HeaderXRequestID, requestID)
	}

	return request, nil
}
