//nolint:wrapcheck
package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/movup"
	"github.com/farcloser/movup/internal/aggregate"
	"github.com/farcloser/movup/internal/output"
	"github.com/farcloser/movup/internal/types"
)

func digestCommand() *cli.Command {
	return &cli.Command{
		Name:      "digest",
		Usage:     "Print a plain-text digest of a payload (or of the current stored report)",
		ArgsUsage: "[payload.json | -]",
		Action: func(_ context.Context, cmd *cli.Command) error {
			var data []byte

			switch cmd.NArg() {
			case 0:
				st, err := openStore(cmd)
				if err != nil {
					return err
				}
				defer st.Close()

				stored, _, err := loadStored(st, "")
				if err != nil {
					return err
				}

				data = []byte(stored)
			case 1:
				var err error

				data, err = readInput(cmd.Args().First())
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("%w: got %d", errInputArgs, cmd.NArg())
			}

			report, err := movup.BuildBytes(data, options(cmd))
			if err != nil {
				return err
			}

			printDigest(report)

			return nil
		},
	}
}

func printDigest(report *movup.Report) {
	summary := report.Summary

	fmt.Println("=== Movup Report Digest ===")
	fmt.Println()
	fmt.Printf("Schema:        %s\n", report.Schema)
	fmt.Printf("Total frames:  %d\n", summary.TotalFrames)
	fmt.Printf("FPS:           %g\n", summary.FPS)
	fmt.Printf("Error frames:  %d\n", summary.TotalErrorFrames)
	fmt.Printf("Error time:    %s\n", output.FormatTime(summary.TotalErrorSeconds))
	fmt.Printf("Error rate:    %s\n", output.FormatPercentage(summary.ErrorPercentage, 1))
	fmt.Printf("Good frames:   %s\n", output.FormatPercentage(max(100-summary.ErrorPercentage, 0), 1))
	fmt.Println()

	fmt.Println("--- Issues By Category ---")

	if !report.HasErrors() {
		fmt.Println("  none")

		return
	}

	sections := make([]*movup.Section, 0, len(report.Sections))
	for i := range report.Sections {
		sections = append(sections, &report.Sections[i])
	}

	slices.SortStableFunc(sections, func(a, b *movup.Section) int {
		return b.FrameCount - a.FrameCount
	})

	for _, section := range sections {
		fmt.Printf("  %s\n", section.Category)
		fmt.Printf("    frames: %d  time: %s", section.FrameCount, output.FormatTime(section.TotalElapsedSeconds))

		if declared, ok := report.Declared[section.Category]; ok && declared != section.FrameCount {
			fmt.Printf("  (service declared %d)", declared)
		}

		fmt.Println()

		if ev := section.WorstFrame; ev != nil {
			fmt.Printf("    worst: #%s  severity: %s  via: %s\n",
				output.FormatFrameNumber(ev.FrameIndex), severityLabel(section.WorstSeverity), ev.Source)
		}
	}

	if !aggregate.Consistent(summary, aggregate.Group(report.Issues)) {
		fmt.Println()
		fmt.Println("WARNING: per-category totals do not add up to the report totals")
	}

	if overlap := overlappingFrames(report.Issues); overlap > 0 {
		fmt.Println()
		fmt.Printf("Note: %d frames are reported under more than one category and counted once per category\n", overlap)
	}
}

// overlappingFrames counts frames that appear under two or more categories.
func overlappingFrames(issues []types.Issue) int {
	seen := make(map[int]map[types.Category]struct{})

	for _, issue := range issues {
		cats, ok := seen[issue.FrameIndex]
		if !ok {
			cats = make(map[types.Category]struct{})
			seen[issue.FrameIndex] = cats
		}

		cats[issue.Category] = struct{}{}
	}

	count := 0

	for _, cats := range seen {
		if len(cats) > 1 {
			count++
		}
	}

	return count
}
