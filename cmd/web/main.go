// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command web is the entry point for the Etagere web front-end.
//
// # Startup Sequence
//
//  1. Load configuration from the environment (and .env).
//  2. Initialize the structured logger.
//  3. Wire the API client, the catalog cache and the handlers.
//  4. Serve until SIGINT/SIGTERM, then shut down gracefully.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/etagere/internal/app"
	"github.com/taibuivan/etagere/internal/platform/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("startup_failure", slog.String("context", "load configuration"), slog.Any("error", err))
		os.Exit(1)
	}

	log := app.NewLogger(cfg.Debug)
	slog.SetDefault(log)

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	application, err := app.New(ctx, cfg, log)
	must(log, err, "wire application")

	runErr := application.Run(ctx)
	if err := application.Close(); err != nil {
		log.Error("close_error", slog.Any("error", err))
	}
	must(log, runErr, "serve")

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup and shutdown. In between, errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
