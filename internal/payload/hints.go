package payload

import "github.com/farcloser/movup/internal/types"

// HintsKind tags the shape the worst-frame hints arrived in.
type HintsKind int

const (
	HintsNone  HintsKind = iota
	HintsList            // [{error_type, frame_number, image_path, severity_score, description}]
	HintsKeyed           // {"posture": {...}, "overstride": {...}}
)

func (k HintsKind) String() string {
	switch k {
	case HintsNone:
		return "none"
	case HintsList:
		return "list"
	case HintsKeyed:
		return "keyed"
	}

	return "unknown"
}

// Hint is a worst-frame suggestion supplied by the analysis service.
type Hint struct {
	FrameIndex    int
	SeverityScore *float64
	Description   string
	ImagePath     string
}

// Hints is the worst-frame hint set, resolved once at ingestion.
type Hints struct {
	kind  HintsKind
	list  []listHint
	keyed map[types.Category]Hint
}

type listHint struct {
	errorType string
	hint      Hint
}

// ParseHints classifies the raw "worst_frames" value. Anything that is neither an array nor an
// object yields HintsNone.
func ParseHints(value any) Hints {
	switch val := value.(type) {
	case []any:
		hints := Hints{kind: HintsList, list: make([]listHint, 0, len(val))}

		for _, elem := range val {
			obj, ok := elem.(map[string]any)
			if !ok {
				continue
			}

			hints.list = append(hints.list, listHint{
				errorType: getString(obj["error_type"]),
				hint:      parseHint(obj),
			})
		}

		return hints
	case map[string]any:
		hints := Hints{kind: HintsKeyed, keyed: make(map[types.Category]Hint, len(val))}

		for key, elem := range val {
			obj, ok := elem.(map[string]any)
			if !ok {
				continue
			}

			hints.keyed[types.Category(key)] = parseHint(obj)
		}

		return hints
	}

	return Hints{}
}

// Kind returns the shape the hints arrived in.
func (h Hints) Kind() HintsKind {
	return h.kind
}

// Lookup returns the hint for a category. For list hints the first matching element wins.
func (h Hints) Lookup(category types.Category) (Hint, bool) {
	switch h.kind {
	case HintsList:
		for _, entry := range h.list {
			if entry.errorType == string(category) {
				return entry.hint, true
			}
		}
	case HintsKeyed:
		hint, ok := h.keyed[category]

		return hint, ok
	case HintsNone:
	}

	return Hint{}, false
}

func parseHint(obj map[string]any) Hint {
	frame, ok := obj["frame_number"]
	if _, numeric := number(frame); !ok || !numeric {
		frame = obj["frame"]
	}

	return Hint{
		FrameIndex:    getInt(frame),
		SeverityScore: getScore(obj["severity_score"]),
		Description:   getString(obj["description"]),
		ImagePath:     getString(obj["image_path"]),
	}
}
