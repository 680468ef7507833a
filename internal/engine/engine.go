// Package engine turns raw per-source listing batches into a ranked,
// diversified shortlist and a cross-source best-deal comparison. It is
// purely synchronous: every operation is an in-memory transformation over
// the slice the caller hands in.
package engine

import (
	"fmt"

	"dealfinder/internal/logging"
	"dealfinder/internal/model"
)

// diversityHead is the size of the shortlist head that must span distinct
// sources before score order takes over again.
const diversityHead = 5

const DefaultMaxResults = 10

type Engine struct {
	maxResults int
	log        *logging.Logger
}

func New(maxResults int, log *logging.Logger) *Engine {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Engine{maxResults: maxResults, log: log}
}

// Aggregate runs Normalizer → Scorer → Diversity Selector over the
// per-source batches and returns the shortlist plus a by-source grouping.
// Empty input is a normal empty response, not an error; an unexpected
// fault inside the pipeline surfaces as a single error.
func (e *Engine) Aggregate(req *model.AggregateRequest) (resp *model.AggregateResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = fmt.Errorf("results aggregation error: %v", r)
		}
	}()

	var all []*model.Product
	for _, sr := range req.Results {
		for _, p := range sr.Products {
			if p == nil {
				continue
			}
			if p.Source == "" {
				p.Source = sr.Source
			}
			all = append(all, p)
		}
	}
	e.log.Info("[engine] aggregating %d products for query %q", len(all), req.OriginalQuery)

	if len(all) == 0 {
		return &model.AggregateResponse{
			OriginalQuery:  req.OriginalQuery,
			SearchParams:   req.SearchParams,
			TopProducts:    []*model.Product{},
			GroupedResults: map[string][]*model.Product{},
		}, nil
	}

	for _, p := range all {
		Normalize(p)
	}

	ranked := e.rank(all, req.SearchParams)
	if len(ranked) > e.maxResults {
		ranked = ranked[:e.maxResults]
	}

	e.log.Info("[engine] selected %d of %d products", len(ranked), len(all))

	return &model.AggregateResponse{
		OriginalQuery:   req.OriginalQuery,
		SearchParams:    req.SearchParams,
		TopProducts:     ranked,
		GroupedResults:  groupBySource(ranked),
		TotalResults:    len(all),
		SelectedResults: len(ranked),
	}, nil
}

// Compare runs Similarity Grouper → Deal Evaluator over a flat product
// pool and returns the product groups and per-group best deals.
func (e *Engine) Compare(req *model.CompareRequest) (resp *model.CompareResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = fmt.Errorf("product comparison error: %v", r)
		}
	}()

	var products []*model.Product
	for _, p := range req.AllProducts {
		if p != nil {
			products = append(products, p)
		}
	}
	e.log.Info("[engine] comparing %d products for query %q", len(products), req.OriginalQuery)

	for _, p := range products {
		Normalize(p)
	}

	groups := GroupSimilar(products)
	deals := e.findBestDeals(groups)

	e.log.Info("[engine] %d product groups, %d best deals", len(groups), len(deals))

	return &model.CompareResponse{
		OriginalQuery: req.OriginalQuery,
		SearchParams:  req.SearchParams,
		ProductGroups: groups,
		BestDeals:     deals,
		AllProducts:   products,
	}, nil
}

func groupBySource(products []*model.Product) map[string][]*model.Product {
	grouped := make(map[string][]*model.Product)
	for _, p := range products {
		source := p.Source
		if source == "" {
			source = "Unknown"
		}
		grouped[source] = append(grouped[source], p)
	}
	return grouped
}
