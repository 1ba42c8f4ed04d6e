// Package worstframe picks the single frame that represents a category.
package worstframe

import (
	"gonum.org/v1/gonum/floats"

	"github.com/farcloser/movup/internal/payload"
	"github.com/farcloser/movup/internal/types"
)

/*
Resolution Order

| Tier | Condition                                   | Result                                  |
|------|---------------------------------------------|-----------------------------------------|
| 1    | list hints contain error_type == category   | first matching hint                     |
| 2    | keyed hints contain the category key        | that hint                               |
| 3    | at least one issue carries a severity score | first issue holding the maximum score   |
| 4    | no issue carries a score                    | first issue in encounter order          |
| -    | empty bucket                                | nil                                     |

A tier-3 candidate only replaces the current best on a strictly greater score, so ties keep the
earliest frame. Hints are honored even when the bucket is empty.
*/

// Resolve returns the worst-frame evidence for a category. ImageURL is left empty; resolving it is
// the caller's job.
func Resolve(category types.Category, issues []types.Issue, hints payload.Hints) *types.Evidence {
	if hint, ok := hints.Lookup(category); ok {
		source := types.SourceListHint
		if hints.Kind() == payload.HintsKeyed {
			source = types.SourceKeyedHint
		}

		return &types.Evidence{
			FrameIndex:    hint.FrameIndex,
			SeverityScore: hint.SeverityScore,
			Description:   hint.Description,
			ImagePath:     hint.ImagePath,
			Source:        source,
		}
	}

	if len(issues) == 0 {
		return nil
	}

	if idx, ok := maxSeverity(issues); ok {
		return fromIssue(issues[idx], types.SourceMaxSeverity)
	}

	return fromIssue(issues[0], types.SourceFirstIssue)
}

// maxSeverity returns the index of the first issue holding the highest score.
func maxSeverity(issues []types.Issue) (int, bool) {
	scores := make([]float64, 0, len(issues))
	positions := make([]int, 0, len(issues))

	for idx := range issues {
		if issues[idx].SeverityScore == nil {
			continue
		}

		scores = append(scores, *issues[idx].SeverityScore)
		positions = append(positions, idx)
	}

	if len(scores) == 0 {
		return 0, false
	}

	// MaxIdx returns the first index on ties.
	return positions[floats.MaxIdx(scores)], true
}

func fromIssue(issue types.Issue, source types.EvidenceSource) *types.Evidence {
	return &types.Evidence{
		FrameIndex:    issue.FrameIndex,
		SeverityScore: issue.SeverityScore,
		Description:   issue.Description,
		ImagePath:     issue.EvidenceImagePath,
		Source:        source,
	}
}
