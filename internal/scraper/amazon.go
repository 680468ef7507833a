package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"dealfinder/internal/logging"
	"dealfinder/internal/model"
)

const amazonBaseURL = "https://www.amazon.com/s"

type Amazon struct {
	log *logging.Logger
}

func NewAmazon(log *logging.Logger) *Amazon {
	return &Amazon{log: log}
}

func (s *Amazon) Source() string { return "Amazon" }

func (s *Amazon) Search(ctx context.Context, params *model.SearchParams) ([]*model.Product, error) {
	query := BuildSearchQuery(params)
	s.log.Info("[amazon] searching for %q", query)

	values := url.Values{}
	values.Set("k", query)
	values.Set("ref", "nb_sb_noss")
	if params != nil && params.PriceRange != nil {
		if params.PriceRange.Min != nil {
			values.Set("low-price", strconv.FormatFloat(*params.PriceRange.Min, 'f', -1, 64))
		}
		if params.PriceRange.Max != nil {
			values.Set("high-price", strconv.FormatFloat(*params.PriceRange.Max, 'f', -1, 64))
		}
	}
	if sort := amazonSort(params); sort != "" {
		values.Set("s", sort)
	}

	doc, err := fetchDocument(ctx, amazonBaseURL+"?"+values.Encode())
	if err != nil {
		return nil, fmt.Errorf("amazon search: %w", err)
	}

	var products []*model.Product
	doc.Find(`div[data-component-type="s-search-result"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if p := s.extract(sel); p != nil {
			p.Source = s.Source()
			products = append(products, p)
		}
		return len(products) < MaxProductsPerSource
	})

	politeDelay()
	s.log.Info("[amazon] extracted %d products", len(products))
	return products, nil
}

func (s *Amazon) extract(sel *goquery.Selection) *model.Product {
	asin, _ := sel.Attr("data-asin")
	if asin == "" {
		return nil
	}

	p := &model.Product{Currency: "USD", ItemID: asin}
	p.IsSponsored = sel.Find(".s-sponsored-label-info-icon").Length() > 0
	p.IsPrime = sel.Find(".s-prime").Length() > 0

	p.Title = strings.TrimSpace(sel.Find("h2 a.a-link-normal span").First().Text())
	if p.Title == "" {
		p.Title = "Unknown Product"
	}

	p.URL = "#"
	if href, ok := sel.Find("h2 a.a-link-normal").First().Attr("href"); ok {
		p.URL = "https://www.amazon.com" + href
	}
	if src, ok := sel.Find("img.s-image").First().Attr("src"); ok {
		p.ImageURL = src
	}

	p.Price = model.Number(parsePrice(sel.Find(".a-price .a-offscreen").First().Text()))
	p.Rating = model.Number(parseRating(sel.Find("i.a-icon-star-small .a-icon-alt").First().Text()))
	p.Reviews = model.Count(parseCount(sel.Find("span.a-size-base").First().Text()))

	return p
}

func amazonSort(params *model.SearchParams) string {
	if params == nil {
		return ""
	}
	switch params.SortingPreference {
	case "price_low_to_high":
		return "price-asc-rank"
	case "price_high_to_low":
		return "price-desc-rank"
	case "rating":
		return "review-rank"
	case "newest":
		return "date-desc-rank"
	}
	return ""
}
