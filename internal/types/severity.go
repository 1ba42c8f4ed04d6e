package types

/*
Severity Score Interpretation

| SeverityScore | Level    | Meaning                                      |
|---------------|----------|----------------------------------------------|
| >= 0.8        | high     | Pronounced deviation, prioritize correction. |
| 0.5 - 0.8     | medium   | Clear deviation, worth working on.           |
| 0.2 - 0.5     | low      | Minor deviation.                             |
| < 0.2         | none     | Below detection.                             |

Scores are passed through from the analysis service untouched and may fall outside [0, 1].
The level is derived for display only and never feeds back into worst-frame selection.
*/

// Severity indicates how bad a detected issue is.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	}

	return "unknown"
}

// Bands defines severity thresholds for a score. Higher values are worse.
type Bands struct {
	Low    float64
	Medium float64
	High   float64
}

// DefaultBands returns the thresholds used by the analysis service.
func DefaultBands() Bands {
	return Bands{Low: 0.2, Medium: 0.5, High: 0.8}
}

// IsZero reports whether no threshold was configured.
func (b Bands) IsZero() bool {
	return b == Bands{}
}

// Match returns the severity for a value.
// Returns (SeverityNone, false) when the value is below detection (the Low threshold).
func (b Bands) Match(value float64) (Severity, bool) {
	if value >= b.High {
		return SeverityHigh, true
	}

	if value >= b.Medium {
		return SeverityMedium, true
	}

	if value >= b.Low {
		return SeverityLow, true
	}

	return SeverityNone, false
}
