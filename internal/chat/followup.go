package chat

import (
	"regexp"
	"strings"

	"dealfinder/internal/model"
)

// Analysis is the outcome of resolving a message against conversation
// memory: whether it continues the previous search, and which of the
// last-shown products it refers to.
type Analysis struct {
	IsFollowUp bool
	Referenced []*model.Product
	// FocusIndex is the 0-based index of the product the message singles
	// out, or -1 when none does.
	FocusIndex int
}

var followUpPhrases = []string{
	"more info", "tell me more", "more details", "specifications", "specs",
	"reviews", "ratings", "shipping", "delivery", "warranty", "features",
	"cheaper", "better", "price", "discount", "deal", "best deal", "cheapest",
	"compare", "difference", "vs", "versus", "which one", "which is", "how is",
	"about product", "about item", "about the", "what about", "first one",
	"second one", "best one", "top pick", "option", "tell me about", "more about",
}

// Brand or marketplace names in a message usually mean a fresh search,
// not a question about what is already on screen.
var knownBrands = []string{
	"sony", "bose", "apple", "samsung", "lg", "beats", "sennheiser",
	"amazon", "walmart", "ebay", "target", "best buy",
}

var numberWords = []string{
	"first", "second", "third", "fourth", "fifth",
	"sixth", "seventh", "eighth", "ninth", "tenth",
}

var (
	productRefPattern = regexp.MustCompile(`(?:product|item|option|deal)\s+#?(\d+)`)
	ordinalRefPattern = regexp.MustCompile(`(\d+)(?:st|nd|rd|th)\s+(?:product|item|option)`)
	bestDealPattern   = regexp.MustCompile(`best\s+(?:deal|option|choice|product|one)`)
	pronounPattern    = regexp.MustCompile(`\b(it|this|that|these|those|they|them)\b`)
)

// AnalyzeQuery decides whether text is a follow-up about products and
// resolves any product references. focusIndex is the remembered focus
// from earlier turns, -1 for none.
func AnalyzeQuery(text string, products []*model.Product, focusIndex int) Analysis {
	none := Analysis{FocusIndex: -1}
	if len(products) == 0 {
		return none
	}

	q := strings.ToLower(strings.TrimSpace(text))

	hasPhrase := false
	for _, phrase := range followUpPhrases {
		if strings.Contains(q, phrase) {
			hasPhrase = true
			break
		}
	}

	// A brand mention without any follow-up phrasing starts a new search.
	if !hasPhrase {
		for _, brand := range knownBrands {
			if strings.Contains(q, brand) {
				return none
			}
		}
	}

	indices := referencedIndices(q, len(products))

	var referenced []*model.Product
	for _, idx := range indices {
		referenced = append(referenced, products[idx])
	}

	resolvedFocus := -1
	if len(indices) > 0 {
		resolvedFocus = indices[0]
	}

	if len(referenced) == 0 && focusIndex >= 0 && focusIndex < len(products) {
		referenced = []*model.Product{products[focusIndex]}
		resolvedFocus = focusIndex
	}

	if len(referenced) == 0 &&
		(strings.Contains(q, "product") || strings.Contains(q, "item") ||
			strings.Contains(q, "it") || strings.Contains(q, "this")) {
		referenced = []*model.Product{products[0]}
		resolvedFocus = 0
	}

	isFollowUp := hasPhrase ||
		pronounPattern.MatchString(q) ||
		len(strings.Fields(q)) <= 5 ||
		len(referenced) > 0

	if !isFollowUp {
		return none
	}
	return Analysis{IsFollowUp: true, Referenced: referenced, FocusIndex: resolvedFocus}
}

// referencedIndices extracts 0-based product indices from phrasings like
// "product 2", "3rd item", "the first one" or "the best deal".
func referencedIndices(q string, count int) []int {
	var indices []int
	add := func(idx int) {
		if idx >= 0 && idx < count {
			indices = append(indices, idx)
		}
	}

	for _, m := range productRefPattern.FindAllStringSubmatch(q, -1) {
		add(atoiSafe(m[1]) - 1)
	}
	for _, m := range ordinalRefPattern.FindAllStringSubmatch(q, -1) {
		add(atoiSafe(m[1]) - 1)
	}
	for i, word := range numberWords {
		if strings.Contains(q, word) {
			add(i)
		}
	}
	if bestDealPattern.MatchString(q) {
		add(0)
	}
	return indices
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return -1
		}
		n = n*10 + int(r-'0')
	}
	return n
}
