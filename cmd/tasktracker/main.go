// Package main is the entry point for the tasktracker CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tasktracker/internal/cli"
	"tasktracker/internal/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}
