package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"dealfinder/internal/config"
	"dealfinder/internal/engine"
	"dealfinder/internal/logging"
	"dealfinder/internal/model"
	"dealfinder/internal/present"
	"dealfinder/internal/query"
	"dealfinder/internal/scraper"
)

// go run cmd/search/main.go -q "wireless headphones under $100"
// go run cmd/search/main.go -q "gaming laptop" -mock -max 5
func main() {
	q := flag.String("q", "", "natural language search query")
	mock := flag.Bool("mock", false, "use deterministic mock scrapers instead of live sites")
	max := flag.Int("max", engine.DefaultMaxResults, "maximum number of results")
	compare := flag.Bool("compare", true, "run the cross-source best deal comparison")
	flag.Parse()

	if *q == "" {
		log.Fatal("usage: search -q \"what you are looking for\"")
	}

	cfg := config.Load()
	logger := logging.New()
	ctx := context.Background()

	var client *openai.Client
	if cfg.OpenAIKey != "" {
		client = openai.NewClient(cfg.OpenAIKey)
	}
	params := query.NewParser(client, logger).Parse(ctx, *q)

	scrapers := buildScrapers(cfg.MockScrapers || *mock, logger)

	var wg sync.WaitGroup
	batches := make([]*model.SourceResult, len(scrapers))
	for i, s := range scrapers {
		wg.Add(1)
		go func(i int, s scraper.Scraper) {
			defer wg.Done()
			products, err := s.Search(ctx, params)
			if err != nil {
				logger.Warn("[Search] %s failed: %v", s.Source(), err)
				return
			}
			batches[i] = &model.SourceResult{Source: s.Source(), Products: products}
		}(i, s)
	}
	wg.Wait()

	var results []model.SourceResult
	for _, b := range batches {
		if b != nil {
			results = append(results, *b)
		}
	}

	eng := engine.New(*max, logger)
	aggResp, err := eng.Aggregate(&model.AggregateRequest{
		OriginalQuery: *q,
		SearchParams:  params,
		Results:       results,
	})
	if err != nil {
		log.Fatalf("aggregating results: %v", err)
	}

	if !*compare {
		fmt.Println(present.SearchResults(*q, aggResp.TopProducts))
		return
	}

	cmpResp, err := eng.Compare(&model.CompareRequest{
		OriginalQuery: *q,
		SearchParams:  params,
		AllProducts:   aggResp.TopProducts,
	})
	if err != nil {
		log.Fatalf("comparing products: %v", err)
	}

	if len(cmpResp.BestDeals) > 0 {
		fmt.Println(present.Comparison(*q, cmpResp.BestDeals, aggResp.TopProducts))
	} else {
		fmt.Println(present.SearchResults(*q, aggResp.TopProducts))
	}
}

func buildScrapers(useMock bool, logger *logging.Logger) []scraper.Scraper {
	if useMock {
		return []scraper.Scraper{
			scraper.NewMock("Amazon", logger),
			scraper.NewMock("Walmart", logger),
			scraper.NewMock("eBay", logger),
		}
	}
	return []scraper.Scraper{
		scraper.NewAmazon(logger),
		scraper.NewWalmart(logger),
		scraper.NewEbay(logger),
	}
}
