// Package chat holds the conversational surface: Redis-backed session
// memory, follow-up detection and the HTTP handler.
package chat

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"dealfinder/internal/model"
)

const (
	sessionTTL   = 30 * time.Minute
	historyLimit = 6
	queryLimit   = 5
)

// SessionStore keeps per-conversation state in Redis: the chat transcript,
// the products last shown, recent queries and the product in focus.
type SessionStore struct {
	Client *redis.Client
}

func historyKey(id string) string  { return "chat:history:" + id }
func productsKey(id string) string { return "chat:products:" + id }
func queriesKey(id string) string  { return "chat:queries:" + id }
func focusKey(id string) string    { return "chat:focus:" + id }

func (s *SessionStore) History(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	val, err := s.Client.Get(ctx, historyKey(sessionID)).Result()
	if err != nil {
		return nil, nil
	}

	var msgs []model.ChatMessage
	json.Unmarshal([]byte(val), &msgs)
	return msgs, nil
}

func (s *SessionStore) Append(ctx context.Context, sessionID string, msg model.ChatMessage) error {
	history, _ := s.History(ctx, sessionID)
	history = append(history, msg)

	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	b, _ := json.Marshal(history)
	return s.Client.Set(ctx, historyKey(sessionID), b, sessionTTL).Err()
}

// SetLastShown replaces the products the user last saw. Follow-up
// questions resolve against this list.
func (s *SessionStore) SetLastShown(ctx context.Context, sessionID string, products []*model.Product) error {
	b, _ := json.Marshal(products)
	return s.Client.Set(ctx, productsKey(sessionID), b, sessionTTL).Err()
}

func (s *SessionStore) LastShown(ctx context.Context, sessionID string) []*model.Product {
	val, err := s.Client.Get(ctx, productsKey(sessionID)).Result()
	if err != nil {
		return nil
	}

	var products []*model.Product
	json.Unmarshal([]byte(val), &products)
	return products
}

// RecordQuery appends to the rolling window of recent search queries.
func (s *SessionStore) RecordQuery(ctx context.Context, sessionID, queryText string) error {
	queries := s.RecentQueries(ctx, sessionID)
	queries = append(queries, queryText)
	if len(queries) > queryLimit {
		queries = queries[len(queries)-queryLimit:]
	}

	b, _ := json.Marshal(queries)
	return s.Client.Set(ctx, queriesKey(sessionID), b, sessionTTL).Err()
}

func (s *SessionStore) RecentQueries(ctx context.Context, sessionID string) []string {
	val, err := s.Client.Get(ctx, queriesKey(sessionID)).Result()
	if err != nil {
		return nil
	}

	var queries []string
	json.Unmarshal([]byte(val), &queries)
	return queries
}

// SetFocus remembers which of the last-shown products the conversation is
// about. Reading the focus extends its expiration.
func (s *SessionStore) SetFocus(ctx context.Context, sessionID string, index int) error {
	return s.Client.Set(ctx, focusKey(sessionID), index, sessionTTL).Err()
}

func (s *SessionStore) Focus(ctx context.Context, sessionID string) (int, bool) {
	val, err := s.Client.Get(ctx, focusKey(sessionID)).Int()
	if err != nil {
		return 0, false
	}
	s.Client.Expire(ctx, focusKey(sessionID), sessionTTL)
	return val, true
}

func (s *SessionStore) ClearFocus(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, focusKey(sessionID)).Err()
}
