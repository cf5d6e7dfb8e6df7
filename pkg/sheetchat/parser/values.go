package parser

import (
	"math"
	"strconv"
	"strings"
)

// ToNumber coerces a cell value into a float64. Numbers pass through;
// strings are parsed as plain decimals after trimming whitespace. Booleans,
// empty cells and anything that fails to parse report ok=false.
func ToNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t)
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// IsNumeric reports whether v coerces to a number.
func IsNumeric(v any) bool {
	_, ok := ToNumber(v)
	return ok
}

// IsText reports whether v is a non-empty string that does not coerce to a
// number.
func IsText(v any) bool {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return false
	}
	return !IsNumeric(s)
}

// Stringify renders a cell value the way it reads in a header row.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}
