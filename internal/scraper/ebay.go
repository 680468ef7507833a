package scraper

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"dealfinder/internal/logging"
	"dealfinder/internal/model"
)

const ebayBaseURL = "https://www.ebay.com/sch/i.html"

var ebayItemIDPattern = regexp.MustCompile(`itm/(\d+)`)

type Ebay struct {
	log *logging.Logger
}

func NewEbay(log *logging.Logger) *Ebay {
	return &Ebay{log: log}
}

func (s *Ebay) Source() string { return "eBay" }

func (s *Ebay) Search(ctx context.Context, params *model.SearchParams) ([]*model.Product, error) {
	query := BuildSearchQuery(params)
	s.log.Info("[ebay] searching for %q", query)

	values := url.Values{}
	values.Set("_nkw", query)
	if params != nil && params.PriceRange != nil {
		if params.PriceRange.Min != nil {
			values.Set("_udlo", strconv.FormatFloat(*params.PriceRange.Min, 'f', -1, 64))
		}
		if params.PriceRange.Max != nil {
			values.Set("_udhi", strconv.FormatFloat(*params.PriceRange.Max, 'f', -1, 64))
		}
	}
	if params != nil && params.BuyItNow {
		values.Set("LH_BIN", "1")
	}
	if sort := ebaySort(params); sort != "" {
		values.Set("_sop", sort)
	}

	doc, err := fetchDocument(ctx, ebayBaseURL+"?"+values.Encode())
	if err != nil {
		return nil, fmt.Errorf("ebay search: %w", err)
	}

	var products []*model.Product
	doc.Find("li.s-item").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if p := s.extract(sel); p != nil {
			p.Source = s.Source()
			products = append(products, p)
		}
		return len(products) < MaxProductsPerSource
	})

	politeDelay()
	s.log.Info("[ebay] extracted %d products", len(products))
	return products, nil
}

func (s *Ebay) extract(sel *goquery.Selection) *model.Product {
	title := strings.TrimSpace(sel.Find(".s-item__title").First().Text())
	if title == "" || strings.Contains(title, "Shop on eBay") {
		return nil
	}
	title = strings.TrimSpace(strings.TrimPrefix(title, "New Listing"))

	p := &model.Product{Title: title, Currency: "USD", URL: "#"}

	if href, ok := sel.Find("a.s-item__link").First().Attr("href"); ok {
		p.URL = href
		if m := ebayItemIDPattern.FindStringSubmatch(href); len(m) > 1 {
			p.ItemID = m[1]
		}
	}
	img := sel.Find(".s-item__image-img").First()
	if src, ok := img.Attr("src"); ok {
		p.ImageURL = src
	} else if src, ok := img.Attr("data-src"); ok {
		p.ImageURL = src
	}

	p.Price = model.Number(parsePrice(sel.Find(".s-item__price").First().Text()))

	if shipping := strings.TrimSpace(sel.Find(".s-item__shipping").First().Text()); shipping != "" {
		if strings.Contains(shipping, "Free") {
			p.IsFreeShipping = true
			p.SetShipping(0)
		} else {
			p.SetShipping(parsePrice(shipping))
		}
	}

	p.Condition = strings.TrimSpace(sel.Find(".SECONDARY_INFO").First().Text())
	if p.Condition == "" {
		p.Condition = "Not specified"
	}

	p.ListingType = "Buy It Now"
	if sel.Find(".s-item__bids").Length() > 0 {
		p.ListingType = "Auction"
	}

	p.IsSponsored = sel.Find(".s-item__SPONSORED").Length() > 0
	p.SellerRating = model.Number(parsePercent(sel.Find(".s-item__seller-info-text").First().Text()))

	return p
}

func ebaySort(params *model.SearchParams) string {
	if params == nil {
		return ""
	}
	switch params.SortingPreference {
	case "price_low_to_high":
		return "15"
	case "price_high_to_low":
		return "16"
	case "newest":
		return "10"
	}
	return ""
}
