// Package scraper fetches candidate product listings from the supported
// retail sources. Each scraper turns one site's result markup into the
// shared Product shape; everything downstream is source-agnostic.
package scraper

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"dealfinder/internal/model"
)

// MaxProductsPerSource bounds how many listings one source contributes to
// a single search.
const MaxProductsPerSource = 5

const (
	scrapeTimeout = 10 * time.Second
	delayMin      = 500 * time.Millisecond
	delayMax      = 1500 * time.Millisecond
)

// Scraper fetches candidate listings for a parsed query from one source.
type Scraper interface {
	Source() string
	Search(ctx context.Context, params *model.SearchParams) ([]*model.Product, error)
}

var httpClient = &http.Client{Timeout: scrapeTimeout}

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.0 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:90.0) Gecko/20100101 Firefox/90.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.114 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/92.0.4515.107 Safari/537.36",
}

func randomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}

// BuildSearchQuery flattens the parsed search parameters into the free
// text string handed to each site's search box.
func BuildSearchQuery(params *model.SearchParams) string {
	if params == nil {
		return ""
	}
	var components []string
	if params.ProductType != "" {
		components = append(components, params.ProductType)
	}
	components = append(components, params.Keywords...)
	if len(params.Brands) > 0 {
		components = append(components, strings.Join(params.Brands, " "))
	}
	components = append(components, params.Features...)
	return strings.Join(components, " ")
}

func fetchDocument(ctx context.Context, fullURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", fullURL, err)
	}
	req.Header.Set("User-Agent", randomUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", fullURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d for %s", resp.StatusCode, fullURL)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// politeDelay spaces requests out so result pages keep loading for us.
func politeDelay() {
	time.Sleep(delayMin + time.Duration(rand.Int63n(int64(delayMax-delayMin))))
}
