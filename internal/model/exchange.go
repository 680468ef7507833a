package model

// SourceResult is one scraper's batch of products for a query.
type SourceResult struct {
	Source   string     `json:"source"`
	Query    string     `json:"query,omitempty"`
	Products []*Product `json:"products"`
}

// AggregateRequest carries the per-source batches into the aggregation
// pipeline.
type AggregateRequest struct {
	OriginalQuery string         `json:"original_query"`
	SearchParams  *SearchParams  `json:"search_params,omitempty"`
	Results       []SourceResult `json:"results"`
}

// AggregateResponse is the ranked, diversified shortlist plus a by-source
// view of it.
type AggregateResponse struct {
	OriginalQuery   string                `json:"original_query"`
	SearchParams    *SearchParams         `json:"search_params,omitempty"`
	TopProducts     []*Product            `json:"top_products"`
	GroupedResults  map[string][]*Product `json:"grouped_results"`
	TotalResults    int                   `json:"total_results"`
	SelectedResults int                   `json:"selected_results"`
}

// CompareRequest carries a flat product pool into the comparison pipeline.
type CompareRequest struct {
	OriginalQuery string        `json:"original_query"`
	SearchParams  *SearchParams `json:"search_params,omitempty"`
	AllProducts   []*Product    `json:"all_products"`
}

// CompareResponse holds the cross-source product groups and the best deal
// found in each.
type CompareResponse struct {
	OriginalQuery string        `json:"original_query"`
	SearchParams  *SearchParams `json:"search_params,omitempty"`
	ProductGroups [][]*Product  `json:"product_groups"`
	BestDeals     []*BestDeal   `json:"best_deals"`
	AllProducts   []*Product    `json:"all_products"`
}

// BestDeal is the cheapest-by-effective-price listing of one product group
// plus comparison statistics against the group average.
type BestDeal struct {
	Product         *Product   `json:"product"`
	SimilarProducts []*Product `json:"similar_products"`
	AveragePrice    float64    `json:"average_price"`
	Savings         float64    `json:"savings"`
	SavingsPercent  float64    `json:"savings_percent"`
	SourceCount     int        `json:"source_count"`
}
