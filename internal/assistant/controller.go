// Package assistant wires query parsing, scraping, the ranking engine and
// presentation into the conversational deal finder.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"dealfinder/internal/chat"
	"dealfinder/internal/engine"
	"dealfinder/internal/logging"
	"dealfinder/internal/model"
	"dealfinder/internal/observability"
	"dealfinder/internal/present"
	"dealfinder/internal/query"
	"dealfinder/internal/repository"
	"dealfinder/internal/scraper"
)

// Memory is the per-conversation state the controller reads and writes.
// *chat.SessionStore is the Redis-backed implementation.
type Memory interface {
	History(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
	Append(ctx context.Context, sessionID string, msg model.ChatMessage) error
	LastShown(ctx context.Context, sessionID string) []*model.Product
	SetLastShown(ctx context.Context, sessionID string, products []*model.Product) error
	RecordQuery(ctx context.Context, sessionID, queryText string) error
	Focus(ctx context.Context, sessionID string) (int, bool)
	SetFocus(ctx context.Context, sessionID string, index int) error
	ClearFocus(ctx context.Context, sessionID string) error
}

// Controller orchestrates one conversation turn: either a fresh search
// across all scrapers or a follow-up about products already shown.
type Controller struct {
	Scrapers []scraper.Scraper
	Parser   *query.Parser
	Engine   *engine.Engine
	Sessions Memory
	Client   *openai.Client

	// Optional analytics sinks; nil disables them.
	SearchLogs   *repository.SearchLogRepository
	PriceHistory *repository.PriceHistoryRepository

	Log *logging.Logger
}

// Respond handles one user message and returns the formatted answer.
func (c *Controller) Respond(ctx context.Context, sessionID, message string) (string, error) {
	lastShown := c.Sessions.LastShown(ctx, sessionID)
	focus := -1
	if idx, ok := c.Sessions.Focus(ctx, sessionID); ok {
		focus = idx
	}

	analysis := chat.AnalyzeQuery(message, lastShown, focus)

	var answer string
	var err error
	if analysis.IsFollowUp {
		c.Log.Info("[Assistant] follow-up question, %d referenced products", len(analysis.Referenced))
		answer, err = c.answerFollowUp(ctx, sessionID, message, analysis)
	} else {
		answer, err = c.runSearch(ctx, sessionID, message)
	}
	if err != nil {
		return "", err
	}

	c.Sessions.Append(ctx, sessionID, model.ChatMessage{Role: "user", Content: message})
	c.Sessions.Append(ctx, sessionID, model.ChatMessage{Role: "assistant", Content: answer})
	return answer, nil
}

// runSearch is the full pipeline: parse, scrape every source, aggregate,
// compare and present.
func (c *Controller) runSearch(ctx context.Context, sessionID, message string) (string, error) {
	observability.SearchesTotal.Inc()

	params := c.Parser.Parse(ctx, message)
	c.Log.Info("[Assistant] parsed query %q into %s", message, describeParams(params))

	results := c.scrapeAll(ctx, params)

	aggResp, err := c.Engine.Aggregate(&model.AggregateRequest{
		OriginalQuery: message,
		SearchParams:  params,
		Results:       results,
	})
	if err != nil {
		return "", fmt.Errorf("aggregating results: %w", err)
	}

	cmpResp, err := c.Engine.Compare(&model.CompareRequest{
		OriginalQuery: message,
		SearchParams:  params,
		AllProducts:   aggResp.TopProducts,
	})
	if err != nil {
		return "", fmt.Errorf("comparing products: %w", err)
	}
	observability.BestDealsTotal.Add(float64(len(cmpResp.BestDeals)))

	c.Sessions.SetLastShown(ctx, sessionID, aggResp.TopProducts)
	c.Sessions.ClearFocus(ctx, sessionID)
	c.Sessions.RecordQuery(ctx, sessionID, message)
	c.recordAnalytics(ctx, sessionID, message, params, aggResp, cmpResp)

	if len(cmpResp.BestDeals) > 0 {
		return present.Comparison(message, cmpResp.BestDeals, aggResp.TopProducts), nil
	}
	return present.SearchResults(message, aggResp.TopProducts), nil
}

// scrapeAll fans out to every scraper concurrently and collects whatever
// succeeded. A failing source is logged and skipped, never fatal.
func (c *Controller) scrapeAll(ctx context.Context, params *model.SearchParams) []model.SourceResult {
	outcomes := make([]*model.SourceResult, len(c.Scrapers))
	var wg sync.WaitGroup

	for i, s := range c.Scrapers {
		wg.Add(1)
		go func(i int, s scraper.Scraper) {
			defer wg.Done()

			products, err := s.Search(ctx, params)
			if err != nil {
				observability.ScrapeErrorsTotal.WithLabelValues(s.Source()).Inc()
				c.Log.Warn("[Assistant] %s search failed: %v", s.Source(), err)
				return
			}
			observability.ScrapedProductsTotal.WithLabelValues(s.Source()).Add(float64(len(products)))
			outcomes[i] = &model.SourceResult{
				Source:   s.Source(),
				Products: products,
			}
		}(i, s)
	}
	wg.Wait()

	var results []model.SourceResult
	for _, o := range outcomes {
		if o != nil {
			results = append(results, *o)
		}
	}
	return results
}

const followUpPrompt = `I'm a shopping assistant helping a customer with product information.

The customer previously searched for products and is now asking a follow-up question: "%s"

They're referring to this product:
%s

Please provide a helpful, conversational response addressing their question
about this specific product. Include relevant details from the product information.

Important guidelines:
1. Always format prices as exact dollar amounts (e.g., "$7.25" not "$1")
2. If the product has a price field, be sure to mention the exact price as shown in the data
3. Be accurate about the product details - don't make up information not in the data
4. Don't create fake discounts or savings.`

// answerFollowUp answers a question about an already shown product. With
// no LLM configured it replies with the product card directly.
func (c *Controller) answerFollowUp(ctx context.Context, sessionID, message string, analysis chat.Analysis) (string, error) {
	if len(analysis.Referenced) == 0 {
		return "I'm sorry, I couldn't find any products to tell you about. Could you try a new search?", nil
	}

	if analysis.FocusIndex >= 0 {
		c.Sessions.SetFocus(ctx, sessionID, analysis.FocusIndex)
	}

	product := analysis.Referenced[0]
	if c.Client == nil {
		return present.SearchResults(message, analysis.Referenced), nil
	}

	details, err := json.MarshalIndent(product, "", "  ")
	if err != nil {
		return "", err
	}

	history, _ := c.Sessions.History(ctx, sessionID)

	messages := []openai.ChatCompletionMessage{{
		Role:    openai.ChatMessageRoleSystem,
		Content: fmt.Sprintf(followUpPrompt, message, details),
	}}
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := c.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       openai.GPT4oMini,
		Messages:    messages,
		Temperature: 0.3,
	})
	if err != nil {
		c.Log.Warn("[Assistant] follow-up LLM failed: %v", err)
		return present.SearchResults(message, analysis.Referenced), nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Controller) recordAnalytics(
	ctx context.Context,
	sessionID, message string,
	params *model.SearchParams,
	aggResp *model.AggregateResponse,
	cmpResp *model.CompareResponse,
) {
	if c.PriceHistory != nil {
		if failed, err := c.PriceHistory.RecordAll(ctx, aggResp.TopProducts); failed > 0 {
			c.Log.Warn("[Assistant] %d price snapshots failed: %v", failed, err)
		}
	}

	if c.SearchLogs == nil {
		return
	}
	entry := repository.SearchLog{
		SessionID:   sessionID,
		Query:       message,
		ProductType: params.ProductType,
		SourceCount: len(aggResp.GroupedResults),
		ResultCount: aggResp.TotalResults,
	}
	if len(cmpResp.BestDeals) > 0 && cmpResp.BestDeals[0].Product != nil {
		entry.BestDealTitle = cmpResp.BestDeals[0].Product.Title
		entry.BestDealSource = cmpResp.BestDeals[0].Product.Source
	}
	if err := c.SearchLogs.Save(entry); err != nil {
		c.Log.Warn("[Assistant] search log failed: %v", err)
	}
}

func describeParams(params *model.SearchParams) string {
	b, err := json.Marshal(params)
	if err != nil {
		return "{}"
	}
	return string(b)
}
