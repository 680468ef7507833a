// Package query turns a natural language shopping request into structured
// search parameters, via the OpenAI API with a regexp fallback.
package query

import (
	"regexp"
	"strconv"
	"strings"

	"dealfinder/internal/model"
)

var (
	underPattern = regexp.MustCompile(`(?:under|less than|below)\s+\$?(\d+(?:\.\d+)?)`)
	overPattern  = regexp.MustCompile(`(?:over|more than|above|at least)\s+\$?(\d+(?:\.\d+)?)`)
	plusPattern  = regexp.MustCompile(`\$?(\d+(?:\.\d+)?)\+`)
	spanPattern  = regexp.MustCompile(`\$?(\d+(?:\.\d+)?)\s*(?:-|to|and)\s*\$?(\d+(?:\.\d+)?)`)

	sortLowPattern    = regexp.MustCompile(`(?:sort|order)\s+by\s+(?:price|cost)\s+(?:low|cheap)|cheapest|lowest\s+price|best\s+price`)
	sortHighPattern   = regexp.MustCompile(`(?:sort|order)\s+by\s+(?:price|cost)\s+(?:high|expensive)|most\s+expensive|highest\s+price`)
	sortRatingPattern = regexp.MustCompile(`(?:sort|order)\s+by\s+(?:rating|ratings|review|reviews|best|top)|best\s+rated|top\s+rated|highest\s+rated`)
	sortNewestPattern = regexp.MustCompile(`(?:sort|order)\s+by\s+(?:new|newest|recent|latest)|newest|most\s+recent|just\s+released`)
)

var validSortPreferences = map[string]bool{
	"price_low_to_high": true,
	"price_high_to_low": true,
	"rating":            true,
	"newest":            true,
}

// ParsePriceRange reads a price constraint out of free text.
// "under $100" → (nil, 100); "$50-$100" → (50, 100); "$50+" → (50, nil).
// Returns nil when the text names no price at all.
func ParsePriceRange(text string) *model.PriceRange {
	text = strings.ToLower(strings.TrimSpace(text))

	if m := underPattern.FindStringSubmatch(text); m != nil {
		max, _ := strconv.ParseFloat(m[1], 64)
		return &model.PriceRange{Max: &max}
	}
	if m := overPattern.FindStringSubmatch(text); m != nil {
		min, _ := strconv.ParseFloat(m[1], 64)
		return &model.PriceRange{Min: &min}
	}
	if m := plusPattern.FindStringSubmatch(text); m != nil {
		min, _ := strconv.ParseFloat(m[1], 64)
		return &model.PriceRange{Min: &min}
	}
	if m := spanPattern.FindStringSubmatch(text); m != nil {
		min, _ := strconv.ParseFloat(m[1], 64)
		max, _ := strconv.ParseFloat(m[2], 64)
		return &model.PriceRange{Min: &min, Max: &max}
	}
	return nil
}

// ParseSortPreference reads an ordering hint out of free text. Empty when
// none is present.
func ParseSortPreference(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	switch {
	case sortLowPattern.MatchString(text):
		return "price_low_to_high"
	case sortHighPattern.MatchString(text):
		return "price_high_to_low"
	case sortRatingPattern.MatchString(text):
		return "rating"
	case sortNewestPattern.MatchString(text):
		return "newest"
	}
	return ""
}

// stopwords carry no search intent and are dropped from fallback keywords.
var stopwords = map[string]bool{
	"the": true, "for": true, "and": true, "with": true, "find": true,
	"show": true, "get": true, "best": true, "deals": true, "deal": true,
	"cheap": true, "cheapest": true, "under": true, "over": true,
	"between": true, "some": true, "need": true, "want": true, "buy": true,
	"a": true, "an": true, "me": true, "i": true, "on": true, "to": true,
}

// Fallback derives search parameters from the raw query with regexps only.
// Used when no LLM is configured or its answer cannot be decoded.
func Fallback(queryText string) *model.SearchParams {
	params := &model.SearchParams{
		PriceRange:        ParsePriceRange(queryText),
		SortingPreference: ParseSortPreference(queryText),
	}

	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(queryText)) {
		word = strings.Trim(word, `,.;:"'?!$`)
		if word == "" || stopwords[word] {
			continue
		}
		if _, err := strconv.ParseFloat(word, 64); err == nil {
			continue
		}
		keywords = append(keywords, word)
	}
	params.Keywords = keywords
	if len(keywords) > 0 {
		params.ProductType = keywords[len(keywords)-1]
	}
	return params
}

// normalizeParams validates what the LLM returned and fills the holes
// the fallback parser can cover.
func normalizeParams(params *model.SearchParams, queryText string) *model.SearchParams {
	if params == nil {
		return Fallback(queryText)
	}
	if params.SortingPreference != "" && !validSortPreferences[strings.ToLower(params.SortingPreference)] {
		params.SortingPreference = "price_low_to_high"
	}
	if params.ProductType == "" && len(params.Keywords) == 0 {
		fb := Fallback(queryText)
		params.Keywords = fb.Keywords
		params.ProductType = fb.ProductType
	}
	if params.PriceRange == nil {
		params.PriceRange = ParsePriceRange(queryText)
	}
	return params
}
