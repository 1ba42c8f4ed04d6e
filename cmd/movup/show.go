//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/farcloser/primordium/format"
	"github.com/urfave/cli/v3"

	"github.com/farcloser/movup"
	"github.com/farcloser/movup/internal/output"
	"github.com/farcloser/movup/internal/payload"
	"github.com/farcloser/movup/internal/store"
)

func showCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the current report, an archived one, or the report history",
		Flags: append(formatFlags(),
			&cli.StringFlag{
				Name:  "id",
				Usage: "Show an archived report by history id",
			},
			&cli.IntFlag{
				Name:  "history",
				Usage: "List the N most recent archived reports",
			},
		),
		Action: func(_ context.Context, cmd *cli.Command) error {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			if limit := cmd.Int("history"); limit > 0 {
				return showHistory(cmd, st, limit)
			}

			data, object, err := loadStored(st, cmd.String("id"))
			if err != nil {
				return err
			}

			report, err := movup.BuildBytes([]byte(data), options(cmd))
			if err != nil {
				return err
			}

			return outputReport(object, report, cmd.String("format"), cmd.Bool("raw"))
		},
	}
}

// loadStored returns the current report payload, or an archived one when id is set.
func loadStored(st *store.Store, id string) (string, string, error) {
	if id != "" {
		entry, err := st.Entry(id)
		if err != nil {
			return "", "", err
		}

		return entry.Value, id, nil
	}

	data, err := st.Get(store.ReportKey)
	if errors.Is(err, store.ErrNotFound) {
		return "", "", fmt.Errorf("%w: nothing stored yet, run upload or report --save first", payload.ErrNoPayload)
	}

	return data, store.ReportKey, err
}

func showHistory(cmd *cli.Command, st *store.Store, limit int) error {
	entries, err := st.History(limit)
	if err != nil {
		return err
	}

	formatter, err := format.GetFormatter(cmd.String("format"))
	if err != nil {
		return err
	}

	// The same payload is often stored more than once; the tracker builds each distinct one once.
	tracker := movup.NewTracker(options(cmd))
	data := make([]*format.Data, 0, len(entries))

	for _, entry := range entries {
		meta := map[string]any{
			"created_at": entry.CreatedAt.Format(time.RFC3339),
		}

		report, _, err := tracker.Load([]byte(entry.Value))
		if err != nil {
			meta["error"] = err.Error()
		} else {
			meta["summary"] = summaryLine(report)
		}

		data = append(data, &format.Data{Object: entry.ID, Meta: meta})
	}

	return formatter.PrintAll(data, os.Stdout)
}

func summaryLine(report *movup.Report) string {
	return fmt.Sprintf("%d error frames in %s (%s of %d frames)",
		report.Summary.TotalErrorFrames,
		output.FormatTime(report.Summary.TotalErrorSeconds),
		output.FormatPercentage(report.Summary.ErrorPercentage, 1),
		report.Summary.TotalFrames,
	)
}
