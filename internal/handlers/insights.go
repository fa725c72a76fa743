package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/nexus/backend/internal/ai"
	"example.com/nexus/backend/internal/models"
	"example.com/nexus/backend/internal/store"
)

// InsightsHandler serves the dashboard insight set.
type InsightsHandler struct {
	Store   *store.Store
	Gateway *ai.Service
}

// NewInsightsHandler builds the insights handler.
func NewInsightsHandler(st *store.Store, gateway *ai.Service) *InsightsHandler {
	return &InsightsHandler{Store: st, Gateway: gateway}
}

// List returns the current insight set.
func (h *InsightsHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]models.Insight{"insights": h.Store.Insights()})
}

// Generate analyzes the last week of data and replaces the prior insight
// set wholesale. A gateway failure still produces a set: the single
// "Analysis Failed" anomaly.
func (h *InsightsHandler) Generate(c echo.Context) error {
	input := ai.InsightsInput{
		Health:  h.Store.HealthRange(7),
		Habits:  h.Store.Habits(),
		Budgets: h.Store.Budgets(),
	}

	insights := h.Gateway.GenerateInsights(c.Request().Context(), input)
	h.Store.ReplaceInsights(c.Request().Context(), insights)

	return c.JSON(http.StatusOK, map[string][]models.Insight{"insights": insights})
}

// Dismiss removes an anomaly insight. Only anomalies are dismissible.
func (h *InsightsHandler) Dismiss(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid insight id")
	}

	if !h.Store.DismissInsight(c.Request().Context(), id) {
		return notFound(c, "anomaly insight not found")
	}

	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}
