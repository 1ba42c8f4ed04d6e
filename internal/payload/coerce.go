package payload

import "math"

// number extracts a finite JSON number. Anything else (strings, booleans, null, objects) is not a number.
func number(value any) (float64, bool) {
	var out float64

	switch val := value.(type) {
	case float64:
		out = val
	case float32:
		out = float64(val)
	case int:
		out = float64(val)
	case int64:
		out = float64(val)
	default:
		return 0, false
	}

	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, false
	}

	return out, true
}

func getFloat(value any) float64 {
	out, _ := number(value)

	return out
}

// getSeconds is getFloat clamped at zero: elapsed time never goes negative.
func getSeconds(value any) float64 {
	return max(getFloat(value), 0)
}

// getInt truncates toward zero. Values outside the int range degrade to 0.
func getInt(value any) int {
	out := math.Trunc(getFloat(value))
	if out >= math.MaxInt || out < math.MinInt {
		return 0
	}

	return int(out)
}

func getScore(value any) *float64 {
	out, ok := number(value)
	if !ok {
		return nil
	}

	return &out
}

func getString(value any) string {
	out, _ := value.(string)

	return out
}

func getObject(value any) map[string]any {
	out, _ := value.(map[string]any)

	return out
}

func getArray(value any) []any {
	out, _ := value.([]any)

	return out
}
