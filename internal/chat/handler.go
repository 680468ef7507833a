package chat

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"dealfinder/internal/logging"
)

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
}

// Responder produces the assistant's reply for one user message within a
// session.
type Responder interface {
	Respond(ctx context.Context, sessionID, message string) (string, error)
}

// Handler exposes the assistant over POST. A request without a session ID
// starts a new conversation.
func Handler(responder Responder, log *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.Message == "" {
			http.Error(w, "message is required", http.StatusBadRequest)
			return
		}
		if req.SessionID == "" {
			req.SessionID = uuid.NewString()
		}

		log.Info("[Chat] session=%s message=%q", req.SessionID, req.Message)

		answer, err := responder.Respond(r.Context(), req.SessionID, req.Message)
		if err != nil {
			log.Error("[Chat] session=%s: %v", req.SessionID, err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ChatResponse{
			SessionID: req.SessionID,
			Answer:    answer,
		})
	}
}
