// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package app is the composition root of the web front-end.

It turns a [config.Config] into a ready [api.Server]: the remote API client,
the optional Redis cache, every domain service and handler, and the health
probes. Both cmd/web and "etagere serve" start the server through it.
*/
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/taibuivan/etagere/internal/admin"
	"github.com/taibuivan/etagere/internal/api"
	"github.com/taibuivan/etagere/internal/auth"
	"github.com/taibuivan/etagere/internal/catalog"
	"github.com/taibuivan/etagere/internal/dashboard"
	"github.com/taibuivan/etagere/internal/library"
	"github.com/taibuivan/etagere/internal/manuscript"
	"github.com/taibuivan/etagere/internal/platform/apiclient"
	"github.com/taibuivan/etagere/internal/platform/config"
	"github.com/taibuivan/etagere/internal/platform/constants"
	"github.com/taibuivan/etagere/internal/platform/debounce"
	redisstore "github.com/taibuivan/etagere/internal/platform/redis"
	"github.com/taibuivan/etagere/internal/platform/respond"
	"github.com/taibuivan/etagere/internal/platform/view"
	"github.com/taibuivan/etagere/internal/session"
)

// App is a wired web front-end.
type App struct {
	Server *api.Server

	cache *redisstore.Store
	log   *slog.Logger
}

// NewLogger returns the JSON logger tagged with the app name. Debug lowers
// the level to include every remote call.
func NewLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String(constants.FieldApp, constants.AppName))
}

// New wires the front-end. ctx bounds the startup checks and the background
// goroutines started by the middleware.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	client, err := apiclient.New(cfg.APIBaseURL, cfg.APITimeout)
	if err != nil {
		return nil, fmt.Errorf("app: api client: %w", err)
	}

	application := &App{log: log}

	// # Catalog cache
	var cache catalog.Cache = catalog.NewMemoryCache()
	health := api.HealthDependencies{CheckAPI: client.Ping}

	if cfg.RedisURL != "" {
		store, err := redisstore.Open(ctx, cfg.RedisURL, log)
		if err != nil {
			return nil, err
		}
		application.cache = store
		cache = catalog.NewRedisCache(store.Client())
		health.CheckCache = store.Check
	} else {
		log.Info("catalog_cache_in_memory")
	}

	// # Presentation
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, errors.Join(err, application.Close())
	}

	cookies := session.NewCookieStore(cfg.CookieSecure)
	pages := respond.NewPages(renderer, cookies)

	// # Domains
	liveness, readiness := api.NewHealthHandlers(health, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,

		Auth: auth.NewHandler(auth.NewService(auth.NewRemoteGateway(client), log), pages, cookies),

		Dashboard: dashboard.NewHandler(
			dashboard.NewService(dashboard.NewRemoteGateway(client), constants.DashboardBucketSize, constants.RecommendationLimit, log),
			pages,
		),

		Catalog: catalog.NewHandler(
			catalog.NewService(catalog.NewRemoteGateway(client), cache, cfg.CatalogCacheTTL, log),
			pages, cfg.DefaultPageSize,
		),

		Library: library.NewHandler(
			library.NewService(library.NewRemoteGateway(client), log),
			pages, debounce.New(cfg.SearchDebounce), cfg.DefaultPageSize,
		),

		Manuscript: manuscript.NewHandler(manuscript.NewService(manuscript.NewRemoteGateway(client), log), pages),

		Admin: admin.NewHandler(admin.NewService(admin.NewRemoteGateway(client), log), pages),
	}

	guard := api.Guard{
		Tokens:   cookies,
		Resolver: session.NewRemoteResolver(client),
		Pages:    pages,
	}

	application.Server = api.NewServer(ctx, cfg, log, guard, handlers)

	log.Info("app_wired",
		slog.String("api_base_url", client.BaseURL()),
		slog.Bool("redis", application.cache != nil),
	)
	return application, nil
}

// Run serves until ctx is done, then drains in-flight requests.
func (application *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := application.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		application.log.Info("shutdown_signal_received")
	case err := <-serverErr:
		return fmt.Errorf("app: listen: %w", err)
	}

	application.log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))
	return application.Server.Shutdown(constants.ShutdownTimeout)
}

// Close releases the Redis connection, if any.
func (application *App) Close() error {
	if application.cache == nil {
		return nil
	}
	return application.cache.Close()
}
