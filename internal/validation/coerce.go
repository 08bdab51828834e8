package validation

import (
	"strconv"
	"strings"
)

// toText returns the trimmed string value, or "" for any non-string input.
func toText(value any) string {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// lowerText returns the trimmed, lowercased string value.
func lowerText(value any) string {
	return strings.ToLower(toText(value))
}

// toInteger coerces a decoded JSON value to an integer. Fractional numbers
// are truncated toward zero and strings are parsed by their leading integer
// digits; anything else yields the fallback.
func toInteger(value any, fallback int) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, ok := parseLeadingInt(v); ok {
			return n
		}
	}
	return fallback
}

// toNumber coerces a decoded JSON value to a float, or the fallback when the
// value has no numeric interpretation.
func toNumber(value any, fallback float64) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return fallback
}

// toBool coerces a decoded JSON value to a boolean: nil, false, zero and the
// empty string are false, everything else is true.
func toBool(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}

// asList returns the value as a slice, or nil for non-array input.
func asList(value any) []any {
	l, _ := value.([]any)
	return l
}

// asObject returns the value as an object, or a nil map for anything else.
// Indexing the nil map simply reads every field as absent.
func asObject(value any) map[string]any {
	m, _ := value.(map[string]any)
	return m
}

func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0, false
	}
	n, err := strconv.Atoi(s[:j])
	if err != nil {
		return 0, false
	}
	return n, true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
