package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"subgrip/internal/cli"
)

func main() {
	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	code := cli.Execute(ctx)
	cancel()
	os.Exit(code)
}
