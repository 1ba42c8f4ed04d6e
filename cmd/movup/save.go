//nolint:wrapcheck
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/movup"
	"github.com/farcloser/movup/internal/export"
	"github.com/farcloser/movup/internal/output"
)

func saveCommand() *cli.Command {
	return &cli.Command{
		Name:  "save",
		Usage: "Forward a copy of the current (or an archived) report to the save endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "id",
				Usage: "Save an archived report by history id",
			},
			&cli.StringFlag{
				Name:    "user",
				Usage:   "User id sent with the report",
				Value:   export.DefaultUser,
				Sources: cli.EnvVars("MOVUP_USER"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			data, _, err := loadStored(st, cmd.String("id"))
			if err != nil {
				return err
			}

			report, err := movup.BuildBytes([]byte(data), options(cmd))
			if err != nil {
				return err
			}

			saver := export.NewSaver(cmd.String("api-url"), cmd.String("user"))

			reportID, err := saver.Save(ctx, output.ReportToMap(report))
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Report saved: %s\n", reportID)

			return nil
		},
	}
}
