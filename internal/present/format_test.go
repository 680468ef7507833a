package present

import (
	"strings"
	"testing"

	"dealfinder/internal/model"
)

func TestSearchResultsEmpty(t *testing.T) {
	out := SearchResults("4k projector", nil)
	if !strings.Contains(out, "Found 0 products for: '4k projector'") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "No deals found matching your criteria.") {
		t.Errorf("missing empty-result prompt:\n%s", out)
	}
}

func TestSearchResultsListing(t *testing.T) {
	shipped := &model.Product{
		Title:   "Wireless Headphones",
		Price:   89.99,
		Source:  "eBay",
		URL:     "https://example.com/1",
		Rating:  4.4,
		Reviews: 210,
	}
	shipped.SetShipping(5.50)

	prime := &model.Product{
		Title:       "Wireless Headphones Pro",
		Price:       129,
		Source:      "Amazon",
		URL:         "https://example.com/2",
		Rating:      5,
		IsPrime:     true,
		IsSponsored: true,
	}

	out := SearchResults("headphones", []*model.Product{shipped, prime})

	for _, want := range []string{
		"Found 2 products for: 'headphones'",
		"1. Wireless Headphones\n",
		"$89.99 + $5.50 shipping",
		"★★★★☆ (210 reviews)",
		"eBay: https://example.com/1",
		"2. Wireless Headphones Pro [SPONSORED]",
		"$129.00 ✓ Prime",
		"★★★★★",
		"Would you like more information",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPriceInfoShipping(t *testing.T) {
	freeExplicit := &model.Product{Price: 20}
	freeExplicit.SetShipping(0)

	flagOnly := &model.Product{Price: 20, IsFreeShipping: true}
	silent := &model.Product{Price: 20}

	if got := priceInfo(freeExplicit); !strings.Contains(got, "(Free shipping)") {
		t.Errorf("explicit zero shipping: %q", got)
	}
	if got := priceInfo(flagOnly); !strings.Contains(got, "(Free shipping)") {
		t.Errorf("free shipping flag: %q", got)
	}
	if got := priceInfo(silent); strings.Contains(got, "shipping") {
		t.Errorf("no shipping info expected: %q", got)
	}
}

func TestComparisonHighlightsDeals(t *testing.T) {
	best := &model.Product{Title: "Robot Vacuum X20", Price: 180, Source: "Walmart", URL: "https://example.com/w"}
	rival := &model.Product{Title: "Robot Vacuum X-20", Price: 240, Source: "Amazon", URL: "https://example.com/a"}

	deals := []*model.BestDeal{{
		Product:         best,
		SimilarProducts: []*model.Product{rival},
		AveragePrice:    210,
		Savings:         30,
		SavingsPercent:  14.3,
		SourceCount:     2,
	}}

	out := Comparison("robot vacuum", deals, []*model.Product{best, rival})

	for _, want := range []string{
		"💡 BEST DEAL COMPARISON 💡",
		"🏆 DEAL #1: Robot Vacuum X20",
		"SAVINGS: $30.00 (14.3% below average price)",
		"COMPARED WITH: 1 similar product across 2 sites",
		"AVAILABLE AT: Walmart - https://example.com/w",
		"ALL PRODUCTS:",
		"1. Robot Vacuum X20 🏆 BEST DEAL #1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Robot Vacuum X-20 🏆") {
		t.Errorf("rival should not carry a deal tag:\n%s", out)
	}
}

func TestComparisonHidesMinorSavings(t *testing.T) {
	p := &model.Product{Title: "Mug", Price: 9, Source: "Amazon", URL: "#"}
	deals := []*model.BestDeal{{Product: p, Savings: 0.30, SavingsPercent: 3.2, SourceCount: 1}}

	out := Comparison("mug", deals, []*model.Product{p})
	if strings.Contains(out, "SAVINGS:") {
		t.Errorf("minor savings should be hidden:\n%s", out)
	}
}
