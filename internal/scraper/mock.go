package scraper

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"

	"dealfinder/internal/logging"
	"dealfinder/internal/model"
)

// Mock serves canned listings so the whole pipeline runs without network
// access. Titles reuse a fixed set of model numbers across sources, which
// gives the comparison pipeline realistic cross-source groups to find.
type Mock struct {
	source string
	rng    *rand.Rand
	log    *logging.Logger
}

var mockBrands = []string{"Sony", "Anker", "Samsung", "Logitech", "JBL"}
var mockModels = []string{"WH-1000XM4", "A3102", "SM-R510", "MX2200", "TUNE510BT"}

func NewMock(source string, log *logging.Logger) *Mock {
	h := fnv.New64a()
	h.Write([]byte(source))
	return &Mock{
		source: source,
		rng:    rand.New(rand.NewSource(int64(h.Sum64()))),
		log:    log,
	}
}

func (s *Mock) Source() string { return s.source }

func (s *Mock) Search(_ context.Context, params *model.SearchParams) ([]*model.Product, error) {
	query := BuildSearchQuery(params)
	if query == "" {
		query = "featured item"
	}
	s.log.Info("[mock:%s] generating results for %q", strings.ToLower(s.source), query)

	products := make([]*model.Product, 0, MaxProductsPerSource)
	for i := 0; i < MaxProductsPerSource; i++ {
		p := &model.Product{
			Title:    fmt.Sprintf("%s %s %s", mockBrands[i], mockModels[i], query),
			Price:    model.Number(s.price(params)),
			Currency: "USD",
			URL:      fmt.Sprintf("https://example.com/%s/item/%d", strings.ToLower(s.source), i+1),
			ImageURL: fmt.Sprintf("https://example.com/%s/item/%d.jpg", strings.ToLower(s.source), i+1),
			Rating:   model.Number(3.5 + s.rng.Float64()*1.5),
			Reviews:  model.Count(s.rng.Intn(3000)),
		}
		s.decorate(p, i)
		products = append(products, p)
	}
	return products, nil
}

func (s *Mock) price(params *model.SearchParams) float64 {
	low, high := 25.0, 500.0
	if params != nil && params.PriceRange != nil {
		if params.PriceRange.Min != nil {
			low = *params.PriceRange.Min
		}
		if params.PriceRange.Max != nil && *params.PriceRange.Max > low {
			high = *params.PriceRange.Max
		}
	}
	return low + s.rng.Float64()*(high-low)
}

// decorate adds the per-source quirks real scrapers would see.
func (s *Mock) decorate(p *model.Product, i int) {
	switch s.source {
	case "Amazon":
		p.IsPrime = i%2 == 0
		p.IsSponsored = i == 0
		p.Condition = "New"
	case "eBay":
		if i%2 == 0 {
			p.IsFreeShipping = true
			p.SetShipping(0)
		} else {
			p.SetShipping(4.99 + float64(i))
		}
		p.Condition = []string{"Brand New", "Used - Like New", "Refurbished"}[i%3]
		p.ListingType = "Buy It Now"
		if i == 4 {
			p.ListingType = "Auction"
		}
		p.SellerRating = model.Number(85 + s.rng.Float64()*15)
	case "Walmart":
		p.IsPickupToday = i%2 == 1
		p.Condition = "New"
	}
}
