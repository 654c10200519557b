package pipeline

import (
	"strconv"
	"strings"
)

// ParseScalar coerces a raw option value the way the interpreter always has:
// booleans first, then integers, then floats, then bracketed lists. Anything
// else stays a string.
func ParseScalar(raw string) any {
	switch raw {
	case "True", "true":
		return true
	case "False", "false":
		return false
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}

	if strings.HasPrefix(raw, "[") {
		return parseList(raw)
	}
	return raw
}

func parseList(raw string) []any {
	body := strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
	parts := strings.Split(body, ",")
	out := make([]any, 0, len(parts))
	for _, p := range parts {
		out = append(out, ParseScalar(strings.TrimSpace(p)))
	}
	return out
}
