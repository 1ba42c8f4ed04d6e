package output_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/movup"
	"github.com/farcloser/movup/internal/output"
	"github.com/farcloser/movup/internal/types"
)

func TestFormatTime(t *testing.T) {
	cases := map[float64]string{
		0:           "0s",
		-4:          "0s",
		math.NaN():  "0s",
		math.Inf(1): "0s",
		5:           "5.0s",
		12.34:       "12.3s",
		65:          "1m 5.0s",
		600.5:       "10m 0.5s",
	}

	for seconds, want := range cases {
		assert.Equal(t, want, output.FormatTime(seconds), "seconds %v", seconds)
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "2.0%", output.FormatPercentage(2, 1))
	assert.Equal(t, "33.33%", output.FormatPercentage(100.0/3, 2))
	assert.Equal(t, "150%", output.FormatPercentage(150, 0))
	assert.Equal(t, "7%", output.FormatPercentage(7, -1))
}

func TestFormatFrameNumber(t *testing.T) {
	assert.Equal(t, "000042", output.FormatFrameNumber(42))
	assert.Equal(t, "000000", output.FormatFrameNumber(0))
	assert.Equal(t, "000000", output.FormatFrameNumber(-3))
	assert.Equal(t, "1234567", output.FormatFrameNumber(1234567))
}

func TestFormatSeverityScore(t *testing.T) {
	value := func(v float64) *float64 { return &v }

	assert.Equal(t, "0%", output.FormatSeverityScore(nil))
	assert.Equal(t, "0%", output.FormatSeverityScore(value(0)))
	assert.Equal(t, "0%", output.FormatSeverityScore(value(1.5)))
	assert.Equal(t, "85.0%", output.FormatSeverityScore(value(0.85)))
	assert.Equal(t, "100.0%", output.FormatSeverityScore(value(1)))
}

func TestReportToMap(t *testing.T) {
	report, err := movup.BuildBytes([]byte(`{
		"status": "success",
		"analysis": [
			{"frame": 5, "issue_type": "overstride", "time_seconds": 0.2, "severity_score": 0.6, "image_path": "f/5.jpg"},
			{"frame": 6, "issue_type": "overstride", "time_seconds": 0.24}
		],
		"summary": {"total_frames": 100, "fps": 25, "overstride_issues_count": 2}
	}`), movup.Options{Origins: []string{"http://host"}})
	require.NoError(t, err)

	meta := output.ReportToMap(report)

	assert.Equal(t, "success", meta["status"])
	assert.Equal(t, "current", meta["schema"])
	assert.Equal(t, map[string]any{"overstride": 2}, meta["declared"])

	summary, ok := meta["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 2, summary["total_error_frames"])
	assert.InDelta(t, 2.0, summary["error_percentage"], 1e-12)

	sections, ok := meta["sections"].([]any)
	require.True(t, ok)
	require.Len(t, sections, 1)

	section, ok := sections[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "overstride", section["category"])
	assert.Equal(t, types.Info(types.CategoryOverstride).Title, section["title"])
	assert.Equal(t, 2, section["frame_count"])

	worst, ok := section["worst_frame"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 5, worst["frame_index"])
	assert.Equal(t, "max-severity", worst["source"])
	assert.Equal(t, "medium", worst["severity"])
	assert.Equal(t, "http://host/f/5.jpg", worst["image_url"])
	assert.NotContains(t, worst, "description")

	issues, ok := meta["issues"].([]any)
	require.True(t, ok)
	require.Len(t, issues, 2)

	second, ok := issues[1].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, second, "severity_score")
	assert.NotContains(t, second, "image_path")

	_, err = json.Marshal(meta)
	require.NoError(t, err)
}

func TestReportToMapOmitsEmptyDeclared(t *testing.T) {
	report, err := movup.BuildBytes([]byte(`{}`), movup.DefaultOptions())
	require.NoError(t, err)

	meta := output.ReportToMap(report)

	assert.NotContains(t, meta, "declared")
	assert.Equal(t, []any{}, meta["sections"])
	assert.Equal(t, []any{}, meta["issues"])
}
