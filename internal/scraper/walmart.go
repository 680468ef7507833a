package scraper

import (
	"context"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"dealfinder/internal/logging"
	"dealfinder/internal/model"
)

const walmartBaseURL = "https://www.walmart.com/search"

type Walmart struct {
	log *logging.Logger
}

func NewWalmart(log *logging.Logger) *Walmart {
	return &Walmart{log: log}
}

func (s *Walmart) Source() string { return "Walmart" }

func (s *Walmart) Search(ctx context.Context, params *model.SearchParams) ([]*model.Product, error) {
	query := BuildSearchQuery(params)
	s.log.Info("[walmart] searching for %q", query)

	values := url.Values{}
	values.Set("q", query)
	if sort := walmartSort(params); sort != "" {
		values.Set("sort", sort)
	}

	doc, err := fetchDocument(ctx, walmartBaseURL+"?"+values.Encode())
	if err != nil {
		return nil, fmt.Errorf("walmart search: %w", err)
	}

	var products []*model.Product
	doc.Find("div[data-item-id], div[data-product-id]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if p := s.extract(sel); p != nil {
			p.Source = s.Source()
			products = append(products, p)
		}
		return len(products) < MaxProductsPerSource
	})

	politeDelay()
	s.log.Info("[walmart] extracted %d products", len(products))
	return products, nil
}

func (s *Walmart) extract(sel *goquery.Selection) *model.Product {
	itemID, _ := sel.Attr("data-item-id")
	if itemID == "" {
		itemID, _ = sel.Attr("data-product-id")
	}

	p := &model.Product{Currency: "USD", ItemID: itemID, URL: "#"}
	p.IsSponsored = sel.Find(".sponsored-flag").Length() > 0

	// Walmart rotates markup; try the known title containers in order.
	for _, selector := range []string{
		".product-title-link span",
		".ProductPlaceholder-title",
		`span[data-automation="product-title"]`,
		"h2", "h3",
	} {
		if title := textOf(sel, selector); title != "" {
			p.Title = title
			break
		}
	}
	if p.Title == "" {
		p.Title = "Unknown Product"
	}

	link := sel.Find("a.product-title-link").First()
	if link.Length() == 0 {
		link = sel.Find(`a[href^="/ip/"]`).First()
	}
	if href, ok := link.Attr("href"); ok {
		p.URL = "https://www.walmart.com" + href
	}

	img := sel.Find("img.product-image-photo").First()
	if img.Length() == 0 {
		img = sel.Find("img.ProductPlaceholder-image").First()
	}
	if src, ok := img.Attr("src"); ok && src != "" {
		p.ImageURL = src
	} else if src, ok := img.Attr("data-src"); ok {
		p.ImageURL = src
	}

	for _, selector := range []string{
		".price-main",
		".product-price",
		`span[data-automation="product-price"]`,
	} {
		if text := textOf(sel, selector); text != "" {
			p.Price = model.Number(parsePrice(text))
			break
		}
	}
	if p.Price == 0 {
		if data, ok := sel.Find("[data-price]").First().Attr("data-price"); ok {
			p.Price = model.Number(parsePrice(data))
		}
	}

	if text := textOf(sel, ".stars-reviews-count"); text != "" {
		p.Rating = model.Number(parseRating(text))
	} else if text := textOf(sel, ".ratings"); text != "" {
		p.Rating = model.Number(parseRating(text))
	}
	if text := textOf(sel, ".stars-reviews-count span"); text != "" {
		p.Reviews = model.Count(parseCount(text))
	} else if text := textOf(sel, ".review-count"); text != "" {
		p.Reviews = model.Count(parseCount(text))
	}

	p.IsPickupToday = sel.Find(".fulfillment-shipping-text").Length() > 0 ||
		sel.Find(".pickup-today").Length() > 0

	return p
}

func textOf(sel *goquery.Selection, selector string) string {
	return trimmed(sel.Find(selector).First().Text())
}

func walmartSort(params *model.SearchParams) string {
	if params == nil {
		return ""
	}
	switch params.SortingPreference {
	case "price_low_to_high":
		return "price_low"
	case "price_high_to_low":
		return "price_high"
	case "rating":
		return "best_match"
	}
	return ""
}
