package engine

import (
	"regexp"
	"strings"

	"dealfinder/internal/model"
)

// modelNumberPattern matches model-number-ish tokens in a lower-cased
// title: a letter run, optional hyphen, digit run, optional trailing
// alphanumerics. Captures forms like "wh-1000xm4" or "a2338".
var modelNumberPattern = regexp.MustCompile(`[a-z]+-?[0-9]+[a-z0-9]*`)

const (
	titleSimilarityThreshold = 0.6
	sharedTermThreshold      = 0.5
	significantTermMinLen    = 4
)

type titleInfo struct {
	title        string
	modelNumbers []string
	terms        map[string]struct{}
}

func newTitleInfo(p *model.Product) titleInfo {
	title := strings.ToLower(p.Title)
	info := titleInfo{
		title:        title,
		modelNumbers: modelNumberPattern.FindAllString(title, -1),
		terms:        make(map[string]struct{}),
	}
	for _, word := range strings.Fields(title) {
		if len(word) >= significantTermMinLen {
			info.terms[word] = struct{}{}
		}
	}
	return info
}

// GroupSimilar partitions a flat product pool into groups believed to be
// the same physical product across sources. Two passes: model-number
// tokens first, then title similarity over whatever is left; anything
// still unmatched becomes its own singleton group. First-listing-wins, so
// the result is deterministic for a given input order.
func GroupSimilar(products []*model.Product) [][]*model.Product {
	infos := make([]titleInfo, len(products))
	for i, p := range products {
		infos[i] = newTitleInfo(p)
	}

	assigned := make([]bool, len(products))
	groups := make([][]*model.Product, 0, len(products))

	// Pass 1: merge on overlapping model-number tokens. A seed that finds
	// no partner is returned to the pool for the title pass.
	for i := range products {
		if assigned[i] || len(infos[i].modelNumbers) == 0 {
			continue
		}
		members := []int{i}
		for j := i + 1; j < len(products); j++ {
			if assigned[j] || len(infos[j].modelNumbers) == 0 {
				continue
			}
			if sharesModelNumber(infos[i].modelNumbers, infos[j].modelNumbers) {
				members = append(members, j)
			}
		}
		groups = finalize(groups, products, assigned, members)
	}

	// Pass 2: title similarity over the still-ungrouped remainder.
	for i := range products {
		if assigned[i] {
			continue
		}
		members := []int{i}
		for j := range products {
			if j == i || assigned[j] || contains(members, j) {
				continue
			}
			if titlesMatch(infos[i], infos[j]) {
				members = append(members, j)
			}
		}
		groups = finalize(groups, products, assigned, members)
	}

	// Pass 3: leftovers become singleton groups.
	for i, p := range products {
		if !assigned[i] {
			groups = append(groups, []*model.Product{p})
			assigned[i] = true
		}
	}

	return groups
}

// finalize keeps a candidate group only when it has at least two members;
// a lone seed stays unassigned for the later passes.
func finalize(groups [][]*model.Product, products []*model.Product, assigned []bool, members []int) [][]*model.Product {
	if len(members) < 2 {
		return groups
	}
	group := make([]*model.Product, 0, len(members))
	for _, idx := range members {
		group = append(group, products[idx])
		assigned[idx] = true
	}
	return append(groups, group)
}

// sharesModelNumber reports whether any token of one listing is a
// substring of (or contains) any token of the other.
func sharesModelNumber(a, b []string) bool {
	for _, m := range a {
		for _, other := range b {
			if strings.Contains(other, m) || strings.Contains(m, other) {
				return true
			}
		}
	}
	return false
}

// titlesMatch applies the pass-2 criteria: sequence similarity above the
// threshold, or shared significant terms covering more than half of the
// larger term set.
func titlesMatch(a, b titleInfo) bool {
	if similarityRatio(a.title, b.title) > titleSimilarityThreshold {
		return true
	}
	shared := 0
	for term := range a.terms {
		if _, ok := b.terms[term]; ok {
			shared++
		}
	}
	larger := len(a.terms)
	if len(b.terms) > larger {
		larger = len(b.terms)
	}
	if larger == 0 {
		larger = 1
	}
	return float64(shared)/float64(larger) > sharedTermThreshold
}

func contains(members []int, idx int) bool {
	for _, m := range members {
		if m == idx {
			return true
		}
	}
	return false
}
