package engine

import (
	"math"
	"strings"

	"dealfinder/internal/model"
)

// Score computes the relevance/value score of one listing against the
// parsed search constraints. Terms are additive and independent; a field
// left at its zero value simply contributes nothing.
func Score(p *model.Product, params *model.SearchParams) float64 {
	score := float64(p.Rating) * 10

	switch reviews := int(p.Reviews); {
	case reviews > 1000:
		score += 15
	case reviews > 500:
		score += 10
	case reviews > 100:
		score += 5
	}

	price := float64(p.Price)
	if params != nil && params.PriceRange != nil {
		score += priceRangeFit(price, params.PriceRange)
	}
	// Cheaper is better, regardless of constraints.
	score += math.Max(0, 30-price/10)

	// Free shipping can score twice when the source sets both the explicit
	// zero cost and the flag. Kept that way on purpose.
	if p.HasShipping() && p.ShippingCost() == 0 {
		score += 5
	}
	if p.IsFreeShipping {
		score += 5
	}

	if p.IsPrime {
		score += 8
	}
	if p.IsPickupToday {
		score += 6
	}

	condition := strings.ToLower(p.Condition)
	if strings.Contains(condition, "new") {
		score += 10
	} else if strings.Contains(condition, "refurbished") || strings.Contains(condition, "renewed") {
		score += 5
	} else if strings.Contains(condition, "used") && strings.Contains(condition, "like new") {
		score += 3
	}

	if strings.Contains(strings.ToLower(p.ListingType), "buy it now") {
		score += 5
	}

	switch seller := float64(p.SellerRating); {
	case seller > 95:
		score += 5
	case seller > 90:
		score += 3
	}

	if p.IsSponsored {
		score -= 10
	}

	return score
}

func priceRangeFit(price float64, r *model.PriceRange) float64 {
	switch {
	case r.Min != nil && r.Max != nil:
		switch {
		case *r.Min <= price && price <= *r.Max:
			return 20
		case price < *r.Min:
			return -5 // too cheap can mean lower quality
		default:
			return -15 // over budget
		}
	case r.Max != nil:
		if price <= *r.Max {
			return 10
		}
	case r.Min != nil:
		if price >= *r.Min {
			return 5
		}
	}
	return 0
}
