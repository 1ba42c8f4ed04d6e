package payload_test

import (
	"errors"
	"testing"

	"github.com/farcloser/primordium/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/movup/internal/payload"
	"github.com/farcloser/movup/internal/types"
)

func TestDecodeCurrentSchema(t *testing.T) {
	pld, err := payload.Decode([]byte(`{
		"status": "success",
		"analysis": [
			{"frame": 12, "issue_type": "posture", "time_seconds": 0.4, "severity_score": 0.75,
			 "description": "trunk lean", "image_path": "frames/12.jpg"},
			{"frame": 30, "issue_type": "overstride", "time_seconds": 1.0}
		],
		"summary": {"fps": 30, "total_frames": 300, "posture_issues_count": 1, "overstride_issues_count": 1}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "success", pld.Status)
	assert.Equal(t, payload.SchemaCurrent, pld.Schema)
	require.Len(t, pld.Issues, 2)

	first := pld.Issues[0]
	assert.Equal(t, 12, first.FrameIndex)
	assert.Equal(t, types.CategoryPosture, first.Category)
	assert.InDelta(t, 0.4, first.TimestampSeconds, 1e-12)
	require.NotNil(t, first.SeverityScore)
	assert.InDelta(t, 0.75, *first.SeverityScore, 1e-12)
	assert.Equal(t, "trunk lean", first.Description)
	assert.Equal(t, "frames/12.jpg", first.EvidenceImagePath)

	second := pld.Issues[1]
	assert.Equal(t, types.CategoryOverstride, second.Category)
	assert.Nil(t, second.SeverityScore)
	assert.Empty(t, second.Description)

	assert.Equal(t, 300, pld.Counters.TotalFrames)
	assert.InDelta(t, 30.0, pld.Counters.FPS, 1e-12)
	assert.Equal(t, map[types.Category]int{types.CategoryPosture: 1, types.CategoryOverstride: 1}, pld.Counters.Declared)
}

func TestDecodeLegacySchema(t *testing.T) {
	pld, err := payload.Decode([]byte(`{"posturas_erradas": [{"frame": 5, "second": 2.0}]}`))
	require.NoError(t, err)

	assert.Equal(t, payload.SchemaLegacy, pld.Schema)
	require.Len(t, pld.Issues, 1)
	assert.Equal(t, types.Issue{
		FrameIndex:       5,
		TimestampSeconds: 2.0,
		Category:         types.CategoryPosture,
		Description:      payload.LegacyDescription,
	}, pld.Issues[0])
}

func TestCurrentSchemaWinsWhenNonEmpty(t *testing.T) {
	pld, err := payload.Decode([]byte(`{
		"analysis": [{"frame": 1, "issue_type": "visibility", "time_seconds": 0.1}],
		"posturas_erradas": [{"frame": 9, "second": 3}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, payload.SchemaCurrent, pld.Schema)
	require.Len(t, pld.Issues, 1)
	assert.Equal(t, types.CategoryVisibility, pld.Issues[0].Category)
}

func TestEmptyAnalysisFallsBackToLegacy(t *testing.T) {
	pld, err := payload.Decode([]byte(`{"analysis": [], "posturas_erradas": [{"frame": 9, "second": 3}]}`))
	require.NoError(t, err)

	assert.Equal(t, payload.SchemaLegacy, pld.Schema)
	require.Len(t, pld.Issues, 1)
	assert.Equal(t, 9, pld.Issues[0].FrameIndex)
}

func TestNeitherShapePresent(t *testing.T) {
	for _, body := range []string{`{}`, `{"analysis": "nope"}`, `{"posturas_erradas": []}`} {
		pld, err := payload.Decode([]byte(body))
		require.NoError(t, err, body)

		assert.Equal(t, payload.SchemaEmpty, pld.Schema, body)
		assert.NotNil(t, pld.Issues, body)
		assert.Empty(t, pld.Issues, body)
	}
}

func TestMalformedFieldsDegrade(t *testing.T) {
	pld, err := payload.Decode([]byte(`{
		"analysis": [
			{"frame": "twelve", "issue_type": "posture", "time_seconds": "soon", "severity_score": "high"},
			{"frame": 7.9, "issue_type": "posture", "time_seconds": -3, "severity_score": null},
			"not an object",
			{"frame": 8, "issue_type": "knee_valgus", "time_seconds": 1}
		],
		"summary": {"total_frames": "many", "fps": true}
	}`))
	require.NoError(t, err)

	require.Len(t, pld.Issues, 2)

	assert.Equal(t, 0, pld.Issues[0].FrameIndex)
	assert.Zero(t, pld.Issues[0].TimestampSeconds)
	assert.Nil(t, pld.Issues[0].SeverityScore)

	assert.Equal(t, 7, pld.Issues[1].FrameIndex)
	assert.Zero(t, pld.Issues[1].TimestampSeconds)
	assert.Nil(t, pld.Issues[1].SeverityScore)

	assert.Zero(t, pld.Counters.TotalFrames)
	assert.Zero(t, pld.Counters.FPS)
}

func TestSeverityScorePassedThroughUnchanged(t *testing.T) {
	pld, err := payload.Decode([]byte(`{"analysis": [{"frame": 1, "issue_type": "posture", "severity_score": 1.7}]}`))
	require.NoError(t, err)

	require.NotNil(t, pld.Issues[0].SeverityScore)
	assert.InDelta(t, 1.7, *pld.Issues[0].SeverityScore, 1e-12)
}

func TestCountersFallBackToTopLevel(t *testing.T) {
	pld, err := payload.Decode([]byte(`{
		"total_frames": 120,
		"fps": 24,
		"analysis_summary": {"posture_issues": 4, "overstride_issues": 0}
	}`))
	require.NoError(t, err)

	assert.Equal(t, 120, pld.Counters.TotalFrames)
	assert.InDelta(t, 24.0, pld.Counters.FPS, 1e-12)
	assert.Equal(t, map[types.Category]int{types.CategoryPosture: 4, types.CategoryOverstride: 0}, pld.Counters.Declared)
}

func TestDecodeRejectsNonObjects(t *testing.T) {
	for _, body := range []string{``, `not json`, `[1, 2]`, `"text"`} {
		_, err := payload.Decode([]byte(body))
		require.Error(t, err, body)
		assert.True(t, errors.Is(err, payload.ErrNoPayload), body)
		assert.True(t, errors.Is(err, fault.ErrInvalidJSON), body)
	}

	_, err := payload.Decode([]byte(`null`))
	assert.ErrorIs(t, err, payload.ErrNoPayload)
}

func TestOutOfRangeFrameDegradesToZero(t *testing.T) {
	pld, err := payload.Decode([]byte(`{
		"analysis": [
			{"frame": 1e300, "issue_type": "posture"},
			{"frame": -1e300, "issue_type": "posture"},
			{"frame": -4.7, "issue_type": "posture"}
		],
		"summary": {"total_frames": 1e19}
	}`))
	require.NoError(t, err)

	require.Len(t, pld.Issues, 3)
	assert.Equal(t, 0, pld.Issues[0].FrameIndex)
	assert.Equal(t, 0, pld.Issues[1].FrameIndex)
	assert.Equal(t, -4, pld.Issues[2].FrameIndex)
	assert.Zero(t, pld.Counters.TotalFrames)
}
