package engine

import (
	"encoding/json"
	"testing"

	"dealfinder/internal/logging"
	"dealfinder/internal/model"
)

func newTestEngine() *Engine {
	return New(DefaultMaxResults, logging.Discard())
}

func TestAggregateEmptyInput(t *testing.T) {
	e := newTestEngine()

	resp, err := e.Aggregate(&model.AggregateRequest{OriginalQuery: "anything"})
	if err != nil {
		t.Fatalf("Aggregate returned error on empty input: %v", err)
	}
	if len(resp.TopProducts) != 0 {
		t.Errorf("TopProducts = %d; want 0", len(resp.TopProducts))
	}
	if len(resp.GroupedResults) != 0 {
		t.Errorf("GroupedResults = %d entries; want 0", len(resp.GroupedResults))
	}
	if resp.TotalResults != 0 || resp.SelectedResults != 0 {
		t.Errorf("counts = %d/%d; want 0/0", resp.TotalResults, resp.SelectedResults)
	}
	if resp.TopProducts == nil || resp.GroupedResults == nil {
		t.Error("empty response must still carry non-nil collections")
	}
}

func TestAggregateSmallPoolKeepsScoreOrder(t *testing.T) {
	e := newTestEngine()

	req := &model.AggregateRequest{
		OriginalQuery: "usb hub",
		Results: []model.SourceResult{
			{Source: "Amazon", Products: []*model.Product{
				{Title: "Hub A", Price: 40, Rating: 3},
				{Title: "Hub B", Price: 40, Rating: 5},
			}},
			{Source: "eBay", Products: []*model.Product{
				{Title: "Hub C", Price: 40, Rating: 4},
			}},
		},
	}

	resp, err := e.Aggregate(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.TotalResults != 3 || resp.SelectedResults != 3 {
		t.Fatalf("counts = %d/%d; want 3/3", resp.TotalResults, resp.SelectedResults)
	}
	wantOrder := []string{"Hub B", "Hub C", "Hub A"}
	for i, want := range wantOrder {
		if resp.TopProducts[i].Title != want {
			t.Errorf("position %d = %q; want %q", i, resp.TopProducts[i].Title, want)
		}
	}
	if len(resp.GroupedResults["Amazon"]) != 2 || len(resp.GroupedResults["eBay"]) != 1 {
		t.Errorf("unexpected grouped results: %+v", resp.GroupedResults)
	}
}

func TestAggregateDiversifiesLargePool(t *testing.T) {
	e := newTestEngine()

	// Ten Amazon listings outscore everything, but one listing from each
	// of four other sources exists further down. Positions 1-5 must span
	// five distinct sources, with the single best listing first.
	var amazon []*model.Product
	for i := 0; i < 10; i++ {
		amazon = append(amazon, &model.Product{
			Title:  "Amazon item",
			Price:  50,
			Rating: model.Number(5 - float64(i)*0.1),
		})
	}
	others := []model.SourceResult{
		{Source: "eBay", Products: []*model.Product{{Title: "eBay item", Price: 50, Rating: 2}}},
		{Source: "Walmart", Products: []*model.Product{{Title: "Walmart item", Price: 50, Rating: 2}}},
		{Source: "Target", Products: []*model.Product{{Title: "Target item", Price: 50, Rating: 2}}},
		{Source: "BestBuy", Products: []*model.Product{{Title: "BestBuy item", Price: 50, Rating: 2}}},
	}

	req := &model.AggregateRequest{
		OriginalQuery: "anything",
		Results:       append([]model.SourceResult{{Source: "Amazon", Products: amazon}}, others...),
	}

	resp, err := e.Aggregate(req)
	if err != nil {
		t.Fatal(err)
	}

	if resp.TopProducts[0] != amazon[0] {
		t.Errorf("position 0 is %q (score %.1f); want the single top scorer", resp.TopProducts[0].Title, resp.TopProducts[0].Score)
	}
	sources := make(map[string]bool)
	for _, p := range resp.TopProducts[:5] {
		sources[p.Source] = true
	}
	if len(sources) != 5 {
		t.Errorf("head spans %d sources; want 5", len(sources))
	}
	if resp.SelectedResults != DefaultMaxResults {
		t.Errorf("SelectedResults = %d; want %d", resp.SelectedResults, DefaultMaxResults)
	}
	if resp.TotalResults != 14 {
		t.Errorf("TotalResults = %d; want 14", resp.TotalResults)
	}
}

func TestAggregateHonorsMaxResults(t *testing.T) {
	e := New(3, logging.Discard())

	var products []*model.Product
	for i := 0; i < 8; i++ {
		products = append(products, &model.Product{Title: "Item", Price: 100})
	}
	resp, err := e.Aggregate(&model.AggregateRequest{
		Results: []model.SourceResult{{Source: "Amazon", Products: products}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.TopProducts) != 3 {
		t.Errorf("len(TopProducts) = %d; want 3", len(resp.TopProducts))
	}
}

func TestAggregateNormalizesStringPrices(t *testing.T) {
	e := newTestEngine()

	raw := []byte(`{
		"original_query": "laptop",
		"results": [
			{"source": "Amazon", "products": [
				{"title": "Laptop A", "price": "$1,299.99", "rating": "4.5", "reviews": "2,341"},
				{"title": "Laptop B", "price": "call for price", "rating": null},
				{"title": "Laptop C"}
			]}
		]
	}`)
	var req model.AggregateRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		t.Fatalf("decoding request: %v", err)
	}

	resp, err := e.Aggregate(&req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.TotalResults != 3 {
		t.Fatalf("TotalResults = %d; want 3", resp.TotalResults)
	}

	byTitle := make(map[string]*model.Product)
	for _, p := range resp.TopProducts {
		byTitle[p.Title] = p
	}
	if got := float64(byTitle["Laptop A"].Price); got != 1299.99 {
		t.Errorf("Laptop A price = %v; want 1299.99", got)
	}
	if got := float64(byTitle["Laptop B"].Price); got != 0 {
		t.Errorf("Laptop B price = %v; want 0", got)
	}
	if got := float64(byTitle["Laptop C"].Price); got != 0 {
		t.Errorf("Laptop C price = %v; want 0", got)
	}
	if got := int(byTitle["Laptop A"].Reviews); got != 2341 {
		t.Errorf("Laptop A reviews = %d; want 2341", got)
	}
}

func TestAggregateFillsMissingSource(t *testing.T) {
	e := newTestEngine()

	resp, err := e.Aggregate(&model.AggregateRequest{
		Results: []model.SourceResult{
			{Source: "Walmart", Products: []*model.Product{{Title: "TV"}}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.TopProducts[0].Source != "Walmart" {
		t.Errorf("source = %q; want Walmart", resp.TopProducts[0].Source)
	}
}

func TestCompareEmptyInput(t *testing.T) {
	e := newTestEngine()

	resp, err := e.Compare(&model.CompareRequest{OriginalQuery: "anything"})
	if err != nil {
		t.Fatalf("Compare returned error on empty input: %v", err)
	}
	if len(resp.ProductGroups) != 0 || len(resp.BestDeals) != 0 {
		t.Errorf("groups/deals = %d/%d; want 0/0", len(resp.ProductGroups), len(resp.BestDeals))
	}
}

func TestCompareEveryProductInExactlyOneGroup(t *testing.T) {
	e := newTestEngine()

	products := []*model.Product{
		{Title: "Sony WH-1000XM4 Wireless Headphones", Price: 278, Source: "Amazon"},
		{Title: "Sony WH1000XM4 Headphones", Price: 265, Source: "eBay"},
		{Title: "Instant Pot Duo 7-in-1", Price: 89, Source: "Walmart"},
		{Title: "Garden Hose 50ft", Price: 25, Source: "Walmart"},
	}

	resp, err := e.Compare(&model.CompareRequest{AllProducts: products})
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[*model.Product]int)
	for _, group := range resp.ProductGroups {
		for _, p := range group {
			seen[p]++
		}
	}
	if len(seen) != len(products) {
		t.Fatalf("grouped %d products; want %d", len(seen), len(products))
	}
	for _, p := range products {
		if seen[p] != 1 {
			t.Errorf("%q appears in %d groups; want 1", p.Title, seen[p])
		}
	}
	if len(resp.BestDeals) != len(resp.ProductGroups) {
		t.Errorf("%d deals for %d groups", len(resp.BestDeals), len(resp.ProductGroups))
	}
}
