package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"mathqa/internal/cli"
)

func main() {
	// Ctrl+C / SIGTERM cancel the root context; serve shuts down gracefully.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
