package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dealfinder/internal/logging"
)

type stubResponder struct {
	answer string
	gotID  string
	gotMsg string
}

func (s *stubResponder) Respond(_ context.Context, sessionID, message string) (string, error) {
	s.gotID = sessionID
	s.gotMsg = message
	return s.answer, nil
}

func TestHandlerAnswers(t *testing.T) {
	responder := &stubResponder{answer: "Found 3 products"}
	h := Handler(responder, logging.Discard())

	body := strings.NewReader(`{"session_id": "abc", "message": "find headphones"}`)
	req := httptest.NewRequest(http.MethodPost, "/chat", body)
	rec := httptest.NewRecorder()
	h(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	var resp ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Answer != "Found 3 products" || resp.SessionID != "abc" {
		t.Errorf("response = %+v", resp)
	}
	if responder.gotID != "abc" || responder.gotMsg != "find headphones" {
		t.Errorf("responder saw id=%q msg=%q", responder.gotID, responder.gotMsg)
	}
}

func TestHandlerAssignsSessionID(t *testing.T) {
	responder := &stubResponder{answer: "ok"}
	h := Handler(responder, logging.Discard())

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message": "hi"}`))
	rec := httptest.NewRecorder()
	h(rec, req)

	var resp ChatResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.SessionID == "" {
		t.Error("handler should mint a session id when the client sends none")
	}
}

func TestHandlerRejectsBadRequests(t *testing.T) {
	h := Handler(&stubResponder{}, logging.Discard())

	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	rec := httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d; want 405", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{}`))
	rec = httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty message status = %d; want 400", rec.Code)
	}
}
