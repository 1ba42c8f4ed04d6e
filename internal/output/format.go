package output

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const frameDigits = 6

// FormatTime renders seconds as "1m 5.0s" or "5.0s". Zero, negative and non-finite values render as "0s".
func FormatTime(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "0s"
	}

	mins := int(seconds / 60)
	secs := math.Mod(seconds, 60)

	if mins > 0 {
		return fmt.Sprintf("%dm %.1fs", mins, secs)
	}

	return fmt.Sprintf("%.1fs", secs)
}

// FormatPercentage renders a percentage with the given number of decimals.
func FormatPercentage(percentage float64, decimals int) string {
	return strconv.FormatFloat(percentage, 'f', max(decimals, 0), 64) + "%"
}

// FormatFrameNumber zero-pads a frame number to six digits.
func FormatFrameNumber(frame int) string {
	if frame <= 0 {
		return strings.Repeat("0", frameDigits)
	}

	return fmt.Sprintf("%0*d", frameDigits, frame)
}

// FormatSeverityScore renders a [0, 1] score as a percentage. Out of range or missing scores render as "0%".
func FormatSeverityScore(score *float64) string {
	if score == nil || *score <= 0 || *score > 1 {
		return "0%"
	}

	return FormatPercentage(*score*100, 1)
}
