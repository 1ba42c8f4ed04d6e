// Package output provides shared report serialization for movup JSON output and exports.
package output

import (
	"github.com/farcloser/movup"
	"github.com/farcloser/movup/internal/types"
)

// ReportToMap converts a report into the canonical map structure used for JSON serialization and
// for the copy forwarded to the save endpoint.
func ReportToMap(report *movup.Report) map[string]any {
	meta := map[string]any{
		"status":  report.Status,
		"schema":  report.Schema.String(),
		"summary": SummaryToMap(report.Summary),
	}

	sections := make([]any, 0, len(report.Sections))
	for i := range report.Sections {
		sections = append(sections, SectionToMap(&report.Sections[i]))
	}

	meta["sections"] = sections

	issues := make([]any, 0, len(report.Issues))
	for _, issue := range report.Issues {
		issues = append(issues, IssueToMap(issue))
	}

	meta["issues"] = issues

	if len(report.Declared) > 0 {
		declared := make(map[string]any, len(report.Declared))
		for cat, count := range report.Declared {
			declared[cat.String()] = count
		}

		meta["declared"] = declared
	}

	return meta
}

// SummaryToMap converts the report summary to a map.
func SummaryToMap(summary types.Summary) map[string]any {
	return map[string]any{
		"total_frames":        summary.TotalFrames,
		"fps":                 summary.FPS,
		"total_error_frames":  summary.TotalErrorFrames,
		"total_error_seconds": summary.TotalErrorSeconds,
		"error_percentage":    summary.ErrorPercentage,
	}
}

// SectionToMap converts a category section to a map.
func SectionToMap(section *movup.Section) map[string]any {
	meta := map[string]any{
		"category":              section.Category.String(),
		"title":                 section.Info.Title,
		"description":           section.Info.Description,
		"impact":                section.Info.Impact,
		"severity":              section.Info.Severity.String(),
		"frame_count":           section.FrameCount,
		"total_elapsed_seconds": section.TotalElapsedSeconds,
	}

	if ev := section.WorstFrame; ev != nil {
		worst := EvidenceToMap(ev)
		worst["severity"] = section.WorstSeverity.String()
		meta["worst_frame"] = worst
	}

	return meta
}

// EvidenceToMap converts worst-frame evidence to a map. Absent fields are omitted.
func EvidenceToMap(ev *types.Evidence) map[string]any {
	meta := map[string]any{
		"frame_index": ev.FrameIndex,
		"source":      ev.Source.String(),
	}

	if ev.SeverityScore != nil {
		meta["severity_score"] = *ev.SeverityScore
	}

	if ev.Description != "" {
		meta["description"] = ev.Description
	}

	if ev.ImageURL != "" {
		meta["image_url"] = ev.ImageURL
	}

	return meta
}

// IssueToMap converts a canonical issue to a map. Absent fields are omitted.
func IssueToMap(issue types.Issue) map[string]any {
	meta := map[string]any{
		"frame_index":       issue.FrameIndex,
		"timestamp_seconds": issue.TimestampSeconds,
		"category":          issue.Category.String(),
	}

	if issue.SeverityScore != nil {
		meta["severity_score"] = *issue.SeverityScore
	}

	if issue.Description != "" {
		meta["description"] = issue.Description
	}

	if issue.EvidenceImagePath != "" {
		meta["image_path"] = issue.EvidenceImagePath
	}

	return meta
}
