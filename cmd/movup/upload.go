//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/movup"
	"github.com/farcloser/movup/internal/integration/ffprobe"
	"github.com/farcloser/movup/internal/integration/inference"
)

var errUploadArgs = errors.New("expected exactly one argument: video file path")

func uploadCommand() *cli.Command {
	return &cli.Command{
		Name:      "upload",
		Usage:     "Send a running video for analysis, store the result and print the report",
		ArgsUsage: "<video>",
		Flags: append(formatFlags(),
			&cli.BoolFlag{
				Name:  "skip-probe",
				Usage: "Do not inspect the video with ffprobe before uploading",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errUploadArgs, cmd.NArg())
			}

			filePath := cmd.Args().First()

			info, err := os.Stat(filePath)
			if err != nil {
				return fmt.Errorf("cannot access %s: %w", filePath, err)
			}

			if err := inference.CheckFile(filePath, info.Size()); err != nil {
				return err
			}

			if !cmd.Bool("skip-probe") {
				probe, err := ffprobe.Probe(ctx, filePath)
				if err != nil {
					return fmt.Errorf("probing video: %w", err)
				}

				if err := inference.CheckProbe(probe); err != nil {
					return err
				}
			}

			file, err := os.Open(filePath) //nolint:gosec // CLI tool opens user-specified video files
			if err != nil {
				return fmt.Errorf("opening video: %w", err)
			}
			defer file.Close()

			fmt.Fprintf(os.Stderr, "Uploading %s for analysis\n", filepath.Base(filePath))

			data, err := inference.New(cmd.String("api-url")).Analyze(ctx, filepath.Base(filePath), file)
			if err != nil {
				return err
			}

			// Validate before persisting: an unusable payload must not replace the current report.
			report, err := movup.BuildBytes(data, options(cmd))
			if err != nil {
				return err
			}

			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			id, err := st.SaveReport(string(data))
			if err != nil {
				return fmt.Errorf("saving report: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Analysis complete (history id %s)\n", id)

			return outputReport(filePath, report, cmd.String("format"), cmd.Bool("raw"))
		},
	}
}
