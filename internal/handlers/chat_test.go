package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"example.com/nexus/backend/internal/ai"
	"example.com/nexus/backend/internal/models"
	"example.com/nexus/backend/internal/store"
)

func decodeChatTurn(t *testing.T, body []byte) []models.ChatMessage {
	t.Helper()

	var resp ChatTurnResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.Messages
}

// TestChatSendSuccess verifies the happy-path turn: user message appended
// first, assistant reply appended after.
func TestChatSendSuccess(t *testing.T) {
	handler := NewChatHandler(store.New(), ai.NewService(&scriptedClient{response: "Your sleep is trending up."}))

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/chat", `{"content": "how is my sleep?"}`)
	if err := handler.Send(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	messages := decodeChatTurn(t, rec.Body.Bytes())
	if len(messages) != 3 {
		t.Fatalf("expected greeting + user + assistant, got %d", len(messages))
	}
	if messages[1].Role != models.ChatRoleUser || messages[1].Content != "how is my sleep?" {
		t.Fatalf("unexpected user turn: %+v", messages[1])
	}
	if messages[2].Role != models.ChatRoleAssistant || messages[2].Content != "Your sleep is trending up." {
		t.Fatalf("unexpected assistant turn: %+v", messages[2])
	}
}

// TestChatSendFailure verifies that a gateway failure still yields an
// assistant turn with the canned fallback, and the user turn survives.
func TestChatSendFailure(t *testing.T) {
	handler := NewChatHandler(store.New(), ai.NewService(&scriptedClient{err: errors.New("boom")}))

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/chat", `{"content": "hello?"}`)
	if err := handler.Send(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	messages := decodeChatTurn(t, rec.Body.Bytes())
	if len(messages) != 3 {
		t.Fatalf("expected greeting + user + fallback, got %d", len(messages))
	}
	if messages[1].Content != "hello?" {
		t.Fatalf("expected the user turn to survive, got %+v", messages[1])
	}
	if messages[2].Content != chatFallbackReply {
		t.Fatalf("expected fallback reply, got %q", messages[2].Content)
	}
}

// TestChatSendEmpty verifies blank input is rejected before any append or
// gateway call.
func TestChatSendEmpty(t *testing.T) {
	st := store.New()
	handler := NewChatHandler(st, ai.NewService(&scriptedClient{err: errors.New("must not be called")}))

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/chat", `{"content": "   "}`)
	if err := handler.Send(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(st.ChatMessages()) != 1 {
		t.Fatalf("expected only the greeting in the log, got %d messages", len(st.ChatMessages()))
	}
}

// TestChatClear verifies the reset endpoint.
func TestChatClear(t *testing.T) {
	st := store.New()
	handler := NewChatHandler(st, ai.NewService(&scriptedClient{response: "ok"}))

	c, _ := newTestContext(t, http.MethodPost, "/api/v1/chat", `{"content": "hello"}`)
	if err := handler.Send(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	c, rec := newTestContext(t, http.MethodDelete, "/api/v1/chat", "")
	if err := handler.Clear(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	messages := decodeChatTurn(t, rec.Body.Bytes())
	if len(messages) != 1 {
		t.Fatalf("expected a single greeting after clear, got %d", len(messages))
	}
	if messages[0].Role != models.ChatRoleAssistant {
		t.Fatalf("expected assistant greeting, got %+v", messages[0])
	}
}
