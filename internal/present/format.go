// Package present formats search and comparison results as conversational
// text for the chat surface and the terminal.
package present

import (
	"fmt"
	"strings"

	"dealfinder/internal/model"
)

// maxDealsShown caps the comparison block to the strongest deals.
const maxDealsShown = 3

// significantSavingsPercent hides savings lines that would read as noise.
const significantSavingsPercent = 5.0

// SearchResults renders a numbered product list for a query.
func SearchResults(queryText string, products []*model.Product) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🔍 Found %d products for: '%s'\n\n", len(products), queryText)
	writeProductList(&b, products, nil)

	if len(products) > 0 {
		b.WriteString("Would you like more information about any of these products?\n")
		b.WriteString("You can ask follow-up questions like 'Tell me more about product 1' or 'Which one has the best reviews?'")
	} else {
		b.WriteString("No deals found matching your criteria.\n")
		b.WriteString("Try broadening your search or using different keywords.")
	}
	return b.String()
}

// Comparison renders the best-deal block followed by the full product list.
func Comparison(queryText string, deals []*model.BestDeal, products []*model.Product) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🔍 Found %d products for: '%s'\n", len(products), queryText)

	if len(deals) > 0 {
		b.WriteString("\n💡 BEST DEAL COMPARISON 💡\n")

		shown := deals
		if len(shown) > maxDealsShown {
			shown = shown[:maxDealsShown]
		}
		for i, deal := range shown {
			p := deal.Product
			if p == nil {
				continue
			}
			fmt.Fprintf(&b, "\n🏆 DEAL #%d: %s\n", i+1, p.Title)
			info := priceInfo(p)
			if p.Condition != "" {
				info += " • " + p.Condition
			}
			fmt.Fprintf(&b, "   💰 PRICE: %s\n", info)

			if deal.Savings > 0 && deal.SavingsPercent > significantSavingsPercent {
				fmt.Fprintf(&b, "   💵 SAVINGS: $%.2f (%.1f%% below average price)\n",
					deal.Savings, deal.SavingsPercent)
			}
			if n := len(deal.SimilarProducts); n > 0 {
				fmt.Fprintf(&b, "   🔄 COMPARED WITH: %d similar %s across %d %s\n",
					n, plural(n, "product"), deal.SourceCount, plural(deal.SourceCount, "site"))
			}
			fmt.Fprintf(&b, "   🏬 AVAILABLE AT: %s - %s\n", sourceName(p), p.URL)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nALL PRODUCTS:\n\n")
	writeProductList(&b, products, deals)

	b.WriteString("Would you like more information about any of these products?\n")
	b.WriteString("You can ask follow-up questions like 'Tell me more about the best deal' or 'Which one has the best reviews?'")
	return b.String()
}

func writeProductList(b *strings.Builder, products []*model.Product, deals []*model.BestDeal) {
	for i, p := range products {
		label := ""
		if p.IsSponsored {
			label = " [SPONSORED]"
		}
		if rank := dealRank(p, deals); rank > 0 {
			label += fmt.Sprintf(" 🏆 BEST DEAL #%d", rank)
		}

		fmt.Fprintf(b, "%d. %s%s\n", i+1, p.Title, label)

		info := priceInfo(p)
		if p.Condition != "" {
			info += " • " + p.Condition
		}
		fmt.Fprintf(b, "   💰 %s\n", info)

		rating := ratingStars(p)
		if p.SellerRating > 0 {
			rating += fmt.Sprintf(" • Seller: %v%% positive", float64(p.SellerRating))
		}
		fmt.Fprintf(b, "   ⭐ %s\n", rating)

		fmt.Fprintf(b, "   🏬 %s: %s\n\n", sourceName(p), p.URL)
	}
}

// priceInfo is the price plus its shipping and convenience qualifiers.
func priceInfo(p *model.Product) string {
	info := fmt.Sprintf("$%.2f", float64(p.Price))

	switch {
	case p.HasShipping() && p.ShippingCost() > 0:
		info += fmt.Sprintf(" + $%.2f shipping", p.ShippingCost())
	case p.HasShipping(), p.IsFreeShipping:
		info += " (Free shipping)"
	}
	if p.IsPrime {
		info += " ✓ Prime"
	}
	if p.IsPickupToday {
		info += " ✓ Pickup Today"
	}
	return info
}

// ratingStars draws a five star gauge with the review count.
func ratingStars(p *model.Product) string {
	full := int(p.Rating)
	if full < 0 {
		full = 0
	}
	if full > 5 {
		full = 5
	}
	stars := strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
	if p.Reviews > 0 {
		stars += fmt.Sprintf(" (%d reviews)", int(p.Reviews))
	}
	return stars
}

// dealRank reports the 1-based rank of p among the shown deals, 0 if absent.
// Identity is by title and source, matching how the engine groups listings.
func dealRank(p *model.Product, deals []*model.BestDeal) int {
	for i, deal := range deals {
		if i >= maxDealsShown {
			break
		}
		if deal.Product == nil {
			continue
		}
		if deal.Product.Title == p.Title && deal.Product.Source == p.Source {
			return i + 1
		}
	}
	return 0
}

func sourceName(p *model.Product) string {
	if p.Source == "" {
		return "Unknown Source"
	}
	return p.Source
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
