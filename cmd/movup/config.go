package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/movup"
	"github.com/farcloser/movup/internal/imageurl"
	"github.com/farcloser/movup/internal/store"
)

const (
	defaultAPIURL    = "http://127.0.0.1:8000"
	defaultStorePath = "movup.db"
)

var errInputArgs = errors.New("expected exactly one argument: payload file or \"-\" for stdin")

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "api-url",
			Usage:   "Base URL of the analysis service",
			Value:   defaultAPIURL,
			Sources: cli.EnvVars("MOVUP_API_URL"),
		},
		&cli.StringSliceFlag{
			Name:    "origin",
			Usage:   "Origin for evidence image URLs (repeatable, the first one is used)",
			Value:   imageurl.DefaultOrigins(),
			Sources: cli.EnvVars("MOVUP_ORIGINS"),
		},
		&cli.StringFlag{
			Name:    "store",
			Usage:   "Path to the report database",
			Value:   defaultStorePath,
			Sources: cli.EnvVars("MOVUP_STORE"),
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"D"},
			Usage:   "Enable debug logging",
		},
	}
}

func formatFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: console, json, markdown",
			Value:   "console",
		},
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "Print the full serialized report instead of the friendly summary",
		},
	}
}

func configureLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("debug") {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	return ctx, nil
}

func options(cmd *cli.Command) movup.Options {
	opts := movup.DefaultOptions()
	opts.Origins = cmd.StringSlice("origin")

	return opts
}

func openStore(cmd *cli.Command) (*store.Store, error) {
	st, err := store.Open(cmd.String("store"))
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	return st, nil
}

// readInput reads a payload from a file, or from stdin when source is "-".
func readInput(source string) ([]byte, error) {
	if source == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(source) //nolint:gosec // CLI tool opens user-specified payload files
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", source, err)
	}

	return data, nil
}
