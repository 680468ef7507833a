package model

// Product is one candidate listing scraped from a single retail source.
// Numeric fields use the lenient Number/Count types so listings arriving
// with string prices ("$1,299.99") or null values decode to zero instead
// of failing the whole batch.
type Product struct {
	Title          string  `json:"title"`
	Price          Number  `json:"price"`
	Currency       string  `json:"currency,omitempty"`
	URL            string  `json:"url,omitempty"`
	ImageURL       string  `json:"image_url,omitempty"`
	Source         string  `json:"source"`
	Rating         Number  `json:"rating,omitempty"`
	Reviews        Count   `json:"reviews,omitempty"`
	Shipping       *Number `json:"shipping,omitempty"`
	IsFreeShipping bool    `json:"is_free_shipping,omitempty"`
	IsPrime        bool    `json:"is_prime,omitempty"`
	IsPickupToday  bool    `json:"is_pickup_today,omitempty"`
	Condition      string  `json:"condition,omitempty"`
	ListingType    string  `json:"listing_type,omitempty"`
	SellerRating   Number  `json:"seller_rating,omitempty"`
	IsSponsored    bool    `json:"is_sponsored,omitempty"`
	ItemID         string  `json:"item_id,omitempty"`

	// Derived by the engine.
	Score          float64 `json:"score,omitempty"`
	EffectivePrice float64 `json:"effective_price,omitempty"`
}

// ShippingCost returns the shipping cost, defaulting to 0 when the source
// provided no shipping information at all.
func (p *Product) ShippingCost() float64 {
	if p.Shipping == nil {
		return 0
	}
	return float64(*p.Shipping)
}

// HasShipping reports whether the source provided any shipping value,
// including an explicit zero.
func (p *Product) HasShipping() bool {
	return p.Shipping != nil
}

// SetShipping attaches an explicit shipping cost to the listing.
func (p *Product) SetShipping(cost float64) {
	n := Number(cost)
	p.Shipping = &n
}
