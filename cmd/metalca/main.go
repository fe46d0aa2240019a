// Command metalca estimates the environmental impact of metal production.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/metalca/internal/cli"
	"github.com/rshade/metalca/pkg/version"
)

func main() {
	os.Exit(cli.ExitCode(run()))
}

// run executes the root command, cancelling its context on SIGINT or
// SIGTERM so that serve and mcp shut down gracefully.
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(version.String()).ExecuteContext(ctx)
}
