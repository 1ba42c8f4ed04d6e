//nolint:wrapcheck
package main

import (
	"fmt"
	"os"

	"github.com/farcloser/primordium/format"

	"github.com/farcloser/movup"
	"github.com/farcloser/movup/internal/output"
	"github.com/farcloser/movup/internal/types"
)

func outputReport(object string, report *movup.Report, formatName string, raw bool) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	var meta map[string]any
	if raw {
		meta = output.ReportToMap(report)
	} else {
		meta = buildFriendlyOutput(report)
	}

	data := &format.Data{
		Object: object,
		Meta:   meta,
	}

	return formatter.PrintAll([]*format.Data{data}, os.Stdout)
}

// buildFriendlyOutput creates a user-friendly summary of the report.
func buildFriendlyOutput(report *movup.Report) map[string]any {
	summary := report.Summary

	meta := map[string]any{
		"summary": summaryLine(report),
		"video":   fmt.Sprintf("%d frames at %g fps", summary.TotalFrames, summary.FPS),
		"quality": fmt.Sprintf("good: %s, with errors: %s",
			output.FormatPercentage(max(100-summary.ErrorPercentage, 0), 1),
			output.FormatPercentage(summary.ErrorPercentage, 1),
		),
	}

	if !report.HasErrors() {
		meta["issues"] = "no issues detected"

		return meta
	}

	sections := make(map[string]any, len(report.Sections))

	for i := range report.Sections {
		section := &report.Sections[i]
		sections[section.Category.String()] = sectionLines(section)
	}

	meta["issues"] = sections

	return meta
}

func sectionLines(section *movup.Section) []any {
	lines := []any{
		section.Info.Title,
		fmt.Sprintf("frames with errors: %d", section.FrameCount),
		"time affected: " + output.FormatTime(section.TotalElapsedSeconds),
		"what it is: " + section.Info.Description,
		"impact: " + section.Info.Impact,
	}

	ev := section.WorstFrame
	if ev == nil {
		return lines
	}

	worst := fmt.Sprintf("worst frame: #%s", output.FormatFrameNumber(ev.FrameIndex))
	if ev.SeverityScore != nil {
		worst += fmt.Sprintf(" (severity %s, %s)", output.FormatSeverityScore(ev.SeverityScore), section.WorstSeverity)
	}

	lines = append(lines, worst)

	if ev.Description != "" {
		lines = append(lines, "  "+ev.Description)
	}

	if ev.ImageURL != "" {
		lines = append(lines, "  image: "+ev.ImageURL)
	}

	return lines
}

func severityLabel(severity types.Severity) string {
	if severity == types.SeverityNone {
		return "-"
	}

	return severity.String()
}
