package query

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"dealfinder/internal/logging"
	"dealfinder/internal/model"
)

const parsePrompt = `Parse the following shopping query into structured search parameters:

"%s"

Return a JSON object with these fields:
- product_type: the main product category being searched for
- keywords: array of important keywords for filtering results
- price_range: optional [min, max] array of numbers, null for an open side
- brands: array of specific brands mentioned, if any
- features: array of important features or specifications mentioned
- sorting_preference: one of price_low_to_high, price_high_to_low, rating, newest, or empty
- buy_it_now: true if the user wants to buy immediately rather than bid

Respond with the JSON object only, no explanations.`

// Parser extracts SearchParams from a user query. With a nil client it
// degrades to the regexp fallback.
type Parser struct {
	client *openai.Client
	model  string
	log    *logging.Logger
}

func NewParser(client *openai.Client, log *logging.Logger) *Parser {
	return &Parser{client: client, model: openai.GPT4oMini, log: log}
}

// Parse asks the model for structured parameters. It never fails the
// search: any API or decoding error falls back to the regexp parser.
func (p *Parser) Parse(ctx context.Context, queryText string) *model.SearchParams {
	if p.client == nil {
		return Fallback(queryText)
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(parsePrompt, queryText),
			},
		},
	})
	if err != nil {
		p.log.Warn("[Query] LLM parse failed, using fallback: %v", err)
		return Fallback(queryText)
	}
	if len(resp.Choices) == 0 {
		p.log.Warn("[Query] LLM returned no choices, using fallback")
		return Fallback(queryText)
	}

	params, err := decodeParams(resp.Choices[0].Message.Content)
	if err != nil {
		p.log.Warn("[Query] LLM answer was not valid JSON, using fallback: %v", err)
		return Fallback(queryText)
	}
	return normalizeParams(params, queryText)
}

// decodeParams unwraps an optional markdown code fence and unmarshals the
// parameter object.
func decodeParams(raw string) (*model.SearchParams, error) {
	raw = stripFences(raw)
	var params model.SearchParams
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, err
	}
	return &params, nil
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, fence := range []string{"```json", "```"} {
		if !strings.HasPrefix(raw, fence) {
			continue
		}
		body := raw[len(fence):]
		if end := strings.Index(body, "```"); end >= 0 {
			body = body[:end]
		}
		return strings.TrimSpace(body)
	}
	return raw
}
