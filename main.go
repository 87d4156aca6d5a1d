package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"

	"github.com/dendrascience/extsort/internal/cmd"
	"github.com/dendrascience/extsort/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := fang.Execute(ctx, cmd.NewRootCmd(),
		fang.WithVersion(version.GetFullVersion()),
		fang.WithErrorHandler(cmd.ErrorHandler),
	)
	stop()
	os.Exit(cmd.ExitCode(err))
}
