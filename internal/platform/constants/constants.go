// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire front-end.

It defines default timeouts, rate limits, cookie names and cross-cutting keys that
are shared between the web layer, the API client and the terminal client.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Session: Cookie names and the token file location.
  - Remote API: Paging defaults and cache prefixes.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "etagere-web"
	AppVersion = "0.3.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle,
	// remote API round-trips included.
	GlobalRequestTimeout = 25 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 15 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 40

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Session

const (
	// SessionCookieName is the fixed key under which the bearer token is stored.
	SessionCookieName = "token"

	// SessionCookieTTL bounds the cookie lifetime; the backend decides the real expiry.
	SessionCookieTTL = 7 * 24 * time.Hour

	// FlashCookieName carries one-shot notifications across a redirect.
	FlashCookieName = "flash"

	// TokenFileDir is the directory (under the user config dir) holding the CLI token.
	TokenFileDir = "etagere"

	// TokenFileName is the fixed file name of the CLI token.
	TokenFileName = "token"

	// LoginPath is where unauthenticated visitors are sent.
	LoginPath = "/login"

	// HomePath is the landing view after a successful login.
	HomePath = "/dashboard"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderAuthorization = "Authorization"
	HeaderAccept        = "Accept"
	HeaderContentType   = "Content-Type"
)

// # Remote API

const (
	// DefaultPageSize is the page size used when the visitor did not pick one.
	DefaultPageSize = 20

	// MaxPageSize bounds the page size accepted from query strings.
	MaxPageSize = 100

	// CatalogMaxPageSize is the upper bound of the catalog proxy per request.
	CatalogMaxPageSize = 40

	// DashboardBucketSize is the number of entries fetched per status bucket.
	DashboardBucketSize = 6

	// RecommendationLimit is the number of recommendations shown on the dashboard.
	RecommendationLimit = 12
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetail  = "detail"
	FieldItems   = "items"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixCatalogSearch = "catalog:search:"
)
