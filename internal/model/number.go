package model

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numericPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// Number is a float64 that tolerates the messy values scrapers and LLMs
// produce: JSON numbers, quoted strings with currency symbols and thousand
// separators, null, booleans. Anything unparsable decodes to 0 and
// decoding never fails.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number(coerceFloat(string(data)))
	return nil
}

// Count is Number's integer counterpart, used for review counts.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	*c = Count(coerceFloat(string(data)))
	return nil
}

// coerceFloat extracts a float from a raw JSON token. "$1,299.99", "1299",
// 1299.99 and "4.5 out of 5" all parse; null, true, "free" and garbage
// map to 0.
func coerceFloat(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" || s == "null" || s == "true" || s == "false" {
		return 0
	}
	// Objects and arrays are never numbers, even when they contain digits.
	if s[0] == '{' || s[0] == '[' {
		return 0
	}
	s = strings.Trim(s, `"`)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(strings.TrimLeft(s, "$€£R¥"))

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return sanitize(v)
	}
	if m := numericPattern.FindString(s); m != "" {
		v, err := strconv.ParseFloat(m, 64)
		if err == nil {
			return sanitize(v)
		}
	}
	return 0
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
