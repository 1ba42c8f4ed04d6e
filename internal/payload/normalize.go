package payload

import (
	"log/slog"

	"github.com/farcloser/movup/internal/types"
)

// LegacyDescription is attached to every issue converted from the legacy schema.
const LegacyDescription = "Legacy posture issue"

// Schema identifies which payload shape the issues were read from.
type Schema int

const (
	SchemaEmpty Schema = iota
	SchemaCurrent
	SchemaLegacy
)

func (s Schema) String() string {
	switch s {
	case SchemaEmpty:
		return "empty"
	case SchemaCurrent:
		return "current"
	case SchemaLegacy:
		return "legacy"
	}

	return "unknown"
}

// Normalize reconciles the current and legacy payload shapes into one canonical issue list.
// The current "analysis" array wins when non-empty; otherwise "posturas_erradas" is converted;
// otherwise the result is empty. It never fails: malformed fields degrade to their defaults.
func Normalize(raw map[string]any) ([]types.Issue, Schema) {
	if records := getArray(raw["analysis"]); len(records) > 0 {
		return normalizeCurrent(records), SchemaCurrent
	}

	if records := getArray(raw["posturas_erradas"]); len(records) > 0 {
		return normalizeLegacy(records), SchemaLegacy
	}

	return []types.Issue{}, SchemaEmpty
}

func normalizeCurrent(records []any) []types.Issue {
	out := make([]types.Issue, 0, len(records))

	for idx, rec := range records {
		obj := getObject(rec)

		category := types.Category(getString(obj["issue_type"]))
		if !category.Valid() {
			slog.Debug("payload.Normalize: dropping record", "index", idx, "issue_type", obj["issue_type"])

			continue
		}

		out = append(out, types.Issue{
			FrameIndex:        getInt(obj["frame"]),
			TimestampSeconds:  getSeconds(obj["time_seconds"]),
			Category:          category,
			SeverityScore:     getScore(obj["severity_score"]),
			Description:       getString(obj["description"]),
			EvidenceImagePath: getString(obj["image_path"]),
		})
	}

	return out
}

func normalizeLegacy(records []any) []types.Issue {
	out := make([]types.Issue, 0, len(records))

	for _, rec := range records {
		obj := getObject(rec)

		out = append(out, types.Issue{
			FrameIndex:       getInt(obj["frame"]),
			TimestampSeconds: getSeconds(obj["second"]),
			Category:         types.CategoryPosture,
			Description:      LegacyDescription,
		})
	}

	return out
}
