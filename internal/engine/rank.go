package engine

import (
	"sort"

	"dealfinder/internal/model"
)

// rank scores every product, sorts by score (stable, descending) and
// applies diversity selection when the pool is large enough to need it.
func (e *Engine) rank(products []*model.Product, params *model.SearchParams) []*model.Product {
	for _, p := range products {
		p.Score = Score(p, params)
	}

	sorted := make([]*model.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	// Small pools skip diversity entirely.
	if len(sorted) <= diversityHead {
		return sorted
	}
	return e.diversify(sorted)
}

// diversify keeps the single top scorer, then fills the head of the list
// with the best listing from each not-yet-seen source, then tops up in
// plain score order until maxResults.
func (e *Engine) diversify(sorted []*model.Product) []*model.Product {
	final := make([]*model.Product, 0, e.maxResults)
	selected := make(map[*model.Product]bool, e.maxResults)
	seenSources := make(map[string]bool)

	top := sorted[0]
	final = append(final, top)
	selected[top] = true
	seenSources[top.Source] = true

	remaining := sorted[1:]
	for _, p := range remaining {
		if len(final) >= diversityHead {
			break
		}
		if !seenSources[p.Source] {
			final = append(final, p)
			selected[p] = true
			seenSources[p.Source] = true
		}
	}

	for _, p := range remaining {
		if len(final) >= e.maxResults {
			break
		}
		if !selected[p] {
			final = append(final, p)
			selected[p] = true
		}
	}

	return final
}
