package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	pricePattern   = regexp.MustCompile(`\d+(?:\.\d+)?`)
	digitsPattern  = regexp.MustCompile(`\d+`)
	percentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)
)

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

// parsePrice extracts the first price from listing text. Ranges like
// "$10.00 to $15.00" take the low end; anything unparsable is 0.
func parsePrice(text string) float64 {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, " to "); idx > 0 {
		text = text[:idx]
	}
	text = strings.ReplaceAll(text, ",", "")
	m := pricePattern.FindString(text)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseCount extracts an integer count ("2,341", "1,204 ratings").
func parseCount(text string) int {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	m := digitsPattern.FindString(text)
	if m == "" {
		return 0
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return v
}

// parseRating extracts the leading value of texts like
// "4.5 out of 5 stars" or "4.5 stars".
func parseRating(text string) float64 {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, " out of"); idx > 0 {
		text = text[:idx]
	}
	m := pricePattern.FindString(text)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || v < 0 || v > 5 {
		return 0
	}
	return v
}

// parsePercent extracts a percentage value ("99.1% positive feedback").
func parsePercent(text string) float64 {
	m := percentPattern.FindStringSubmatch(text)
	if len(m) < 2 {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return v
}
