package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/farcloser/movup/version"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	appl := &cli.Command{
		Name:    version.Name(),
		Usage:   "Running gait analysis reports",
		Version: version.Version() + " " + version.Commit(),
		Flags:   globalFlags(),
		Before:  configureLogging,
		Commands: []*cli.Command{
			reportCommand(),
			uploadCommand(),
			showCommand(),
			saveCommand(),
			digestCommand(),
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}
