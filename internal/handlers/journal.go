package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/nexus/backend/internal/ai"
	"example.com/nexus/backend/internal/models"
	"example.com/nexus/backend/internal/store"
)

// JournalHandler lists entries and runs the analyze-and-save flow.
type JournalHandler struct {
	Store   *store.Store
	Gateway *ai.Service
}

// NewJournalHandler builds the journal handler.
func NewJournalHandler(st *store.Store, gateway *ai.Service) *JournalHandler {
	return &JournalHandler{Store: st, Gateway: gateway}
}

type AnalyzeJournalRequest struct {
	Content string `json:"content" validate:"required"`
}

// List returns all journal entries, newest first.
func (h *JournalHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.JournalEntries())
}

// Analyze runs sentiment analysis on the entry text and saves the
// entry regardless of whether the analysis succeeded. An entry with a
// nil analysis is still worth keeping.
func (h *JournalHandler) Analyze(c echo.Context) error {
	var req AnalyzeJournalRequest
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

	analysis := h.Gateway.AnalyzeJournal(c.Request().Context(), content)

	entry := h.Store.SaveJournalEntry(c.Request().Context(), models.JournalEntry{
		Content:  content,
		Analysis: analysis,
	})

	return c.JSON(http.StatusCreated, entry)
}
