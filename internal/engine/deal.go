package engine

import (
	"math"
	"sort"

	"dealfinder/internal/model"
)

// findBestDeals evaluates every product group: computes each member's
// effective price, picks the cheapest-adjusted listing as the deal, and
// derives savings statistics against the group average. The returned list
// is ordered by savings percent, best first.
func (e *Engine) findBestDeals(groups [][]*model.Product) []*model.BestDeal {
	deals := make([]*model.BestDeal, 0, len(groups))

	for _, group := range groups {
		if len(group) == 0 {
			continue
		}

		for _, p := range group {
			p.EffectivePrice = effectivePrice(p)
		}

		sorted := make([]*model.Product, len(group))
		copy(sorted, group)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].EffectivePrice < sorted[j].EffectivePrice
		})
		best := sorted[0]

		var total float64
		for _, p := range group {
			total += p.EffectivePrice
		}
		avgPrice := total / float64(len(group))

		var savings, savingsPercent float64
		if avgPrice > 0 {
			savings = avgPrice - best.EffectivePrice
			savingsPercent = savings / avgPrice * 100
		}

		sources := make(map[string]struct{})
		for _, p := range group {
			sources[p.Source] = struct{}{}
		}

		e.log.Info("[engine] best deal %q at %.2f (saves %.2f, %.1f%%)",
			best.Title, best.EffectivePrice, savings, savingsPercent)

		deals = append(deals, &model.BestDeal{
			Product:         best,
			SimilarProducts: sorted[1:],
			AveragePrice:    avgPrice,
			Savings:         savings,
			SavingsPercent:  savingsPercent,
			SourceCount:     len(sources),
		})
	}

	sort.SliceStable(deals, func(i, j int) bool {
		return deals[i].SavingsPercent > deals[j].SavingsPercent
	})
	return deals
}

// effectivePrice is the listing price adjusted for shipping, a 2%
// convenience discount for Prime or same-day pickup, and a small
// rating/review-confidence factor (at most 5% off for a 5-star product
// with 1000+ reviews).
func effectivePrice(p *model.Product) float64 {
	price := float64(p.Price) + p.ShippingCost()

	if p.IsPrime || p.IsPickupToday {
		price *= 0.98
	}

	if rating := float64(p.Rating); rating > 0 {
		ratingFactor := math.Min(1, rating/5)
		reviewFactor := 0.5
		if reviews := int(p.Reviews); reviews > 0 {
			reviewFactor = math.Min(1, float64(reviews)/1000)
		}
		price *= 1 - ratingFactor*reviewFactor*0.05
	}

	return price
}
