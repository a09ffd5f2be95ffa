// Copyright (c) 2026 Etagere. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command etagere is the terminal client. "etagere serve" starts the web
// front-end; every other command talks to the remote API directly.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/etagere/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	code := cli.Execute(ctx, os.Args[1:], cli.Options{})
	stop()
	os.Exit(code)
}
