// Package main is the main package for the docwiki CLI.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/holonoms/docwiki/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd(&cli.Options{}).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
