package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/weightkeeper/internal/client/cli"
	"github.com/iudanet/weightkeeper/internal/client/iocli"
	"github.com/iudanet/weightkeeper/internal/client/sync"
	"github.com/iudanet/weightkeeper/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	if _, err := config.LoadEnv(config.DefaultEnvFiles); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load .env: %v\n", err)
		return 1
	}

	cfg, err := config.LoadClient(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.New(cfg, iocli.NewStdio(), cli.WithVersion(Version+" "+GitCommit, BuildDate))
	if err := app.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, sync.ErrVersionConflict) {
			fmt.Fprintln(os.Stderr, "The file kept changing; run the command again.")
		}
		return 1
	}

	return 0
}
