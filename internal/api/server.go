// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the chi router.
  - Only this package and the commands are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/etagere/internal/admin"
	"github.com/taibuivan/etagere/internal/auth"
	"github.com/taibuivan/etagere/internal/catalog"
	"github.com/taibuivan/etagere/internal/dashboard"
	"github.com/taibuivan/etagere/internal/library"
	"github.com/taibuivan/etagere/internal/manuscript"
	"github.com/taibuivan/etagere/internal/platform/config"
	"github.com/taibuivan/etagere/internal/platform/constants"
	"github.com/taibuivan/etagere/internal/platform/middleware"
	"github.com/taibuivan/etagere/internal/platform/respond"
	"github.com/taibuivan/etagere/internal/platform/view"
	"github.com/taibuivan/etagere/internal/session"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once at startup with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler; always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 when the remote API and cache answer.
	Readiness http.HandlerFunc

	// Auth serves the guest pages and logout.
	Auth *auth.Handler

	Dashboard  *dashboard.Handler
	Catalog    *catalog.Handler
	Library    *library.Handler
	Manuscript *manuscript.Handler

	// Admin is only reachable by users reported as admins.
	Admin *admin.Handler
}

// Guard holds what the session middleware needs.
type Guard struct {
	Tokens   middleware.TokenStore
	Resolver session.Resolver
	Pages    *respond.Pages
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, guard Guard, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.LoadSession(guard.Tokens))
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Handle("/static/*", view.Static())

	r.Get("/", func(writer http.ResponseWriter, request *http.Request) {
		http.Redirect(writer, request, constants.HomePath, http.StatusSeeOther)
	})

	// # Guest Pages
	r.Group(func(guest chi.Router) {
		guest.Use(middleware.RedirectAuthenticated)
		h.Auth.RegisterRoutes(guest)
	})
	r.Post("/logout", h.Auth.Logout)

	// # Member Pages
	r.Group(func(member chi.Router) {
		member.Use(middleware.RequireSession)
		member.Use(middleware.Identify(guard.Resolver, guard.Tokens))

		h.Dashboard.RegisterRoutes(member)
		h.Catalog.RegisterRoutes(member)
		h.Library.RegisterRoutes(member)
		h.Manuscript.RegisterRoutes(member)

		member.Group(func(staff chi.Router) {
			staff.Use(middleware.RequireAdmin(guard.Pages.ForbiddenHandler()))
			h.Admin.RegisterRoutes(staff)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler returns the root handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
