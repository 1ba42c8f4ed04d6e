//nolint:wrapcheck
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/movup"
)

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Build a report from an analysis payload",
		ArgsUsage: "<payload.json | ->",
		Flags: append(formatFlags(),
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Keep the payload as the current report in the store",
			},
		),
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errInputArgs, cmd.NArg())
			}

			source := cmd.Args().First()

			data, err := readInput(source)
			if err != nil {
				return err
			}

			report, err := movup.BuildBytes(data, options(cmd))
			if err != nil {
				return err
			}

			if cmd.Bool("save") {
				st, err := openStore(cmd)
				if err != nil {
					return err
				}
				defer st.Close()

				id, err := st.SaveReport(string(data))
				if err != nil {
					return fmt.Errorf("saving report: %w", err)
				}

				fmt.Fprintf(os.Stderr, "Report stored (history id %s)\n", id)
			}

			return outputReport(source, report, cmd.String("format"), cmd.Bool("raw"))
		},
	}
}
