package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/nexus/backend/internal/ai"
	"example.com/nexus/backend/internal/models"
	"example.com/nexus/backend/internal/store"
)

const chatFallbackReply = "I'm having trouble connecting to the neural network. Please try again."

// ChatHandler runs the conversational loop against the chat log.
type ChatHandler struct {
	Store   *store.Store
	Gateway *ai.Service
}

// NewChatHandler builds the chat handler.
func NewChatHandler(st *store.Store, gateway *ai.Service) *ChatHandler {
	return &ChatHandler{Store: st, Gateway: gateway}
}

type SendChatRequest struct {
	Content string `json:"content" validate:"required"`
}

type ChatTurnResponse struct {
	Messages []models.ChatMessage `json:"messages"`
}

// List returns the full chat log in send order.
func (h *ChatHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.ChatMessages())
}

// Send appends the user's message immediately, then asks for a reply with a
// context snapshot attached. A failed reply still produces an assistant turn
// so the log never ends on the user.
func (h *ChatHandler) Send(c echo.Context) error {
	var req SendChatRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return badRequest(c, "content must not be empty")
	}

	ctx := c.Request().Context()
	h.Store.AppendChatMessages(ctx, models.ChatMessage{
		Role:    models.ChatRoleUser,
		Content: content,
	})

	reply, err := h.Gateway.ChatReply(ctx, h.chatInput(content))
	if err != nil {
		reply = chatFallbackReply
	}

	h.Store.AppendChatMessages(ctx, models.ChatMessage{
		Role:    models.ChatRoleAssistant,
		Content: reply,
	})

	return c.JSON(http.StatusOK, ChatTurnResponse{Messages: h.Store.ChatMessages()})
}

// Clear resets the log to a fresh greeting.
func (h *ChatHandler) Clear(c echo.Context) error {
	messages := h.Store.ClearChat(c.Request().Context())
	return c.JSON(http.StatusOK, ChatTurnResponse{Messages: messages})
}

func (h *ChatHandler) chatInput(query string) ai.ChatInput {
	habits := h.Store.Habits()
	summaries := make([]ai.HabitSummary, len(habits))
	for i, habit := range habits {
		summaries[i] = ai.HabitSummary{
			Title:     habit.Title,
			Streak:    habit.Streak,
			Completed: habit.Completed,
		}
	}

	return ai.ChatInput{
		RecentHealth: lastMetrics(h.Store.HealthRange(0), 3),
		Habits:       summaries,
		Budgets:      h.Store.Budgets(),
		Query:        query,
	}
}
