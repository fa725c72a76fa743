package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/nexus/backend/internal/ai"
	"example.com/nexus/backend/internal/models"
	"example.com/nexus/backend/internal/store"
)

// BlueprintHandler generates the adaptive daily schedule.
type BlueprintHandler struct {
	Store   *store.Store
	Gateway *ai.Service
}

// NewBlueprintHandler builds the blueprint handler.
func NewBlueprintHandler(st *store.Store, gateway *ai.Service) *BlueprintHandler {
	return &BlueprintHandler{Store: st, Gateway: gateway}
}

type BlueprintResponse struct {
	Blueprint *ai.Blueprint `json:"blueprint"`
}

// Generate builds a blueprint from the most recent health days and the
// habit list. The result is transient; a null blueprint is the failure
// state the view renders.
func (h *BlueprintHandler) Generate(c echo.Context) error {
	recent := lastMetrics(h.Store.HealthRange(0), 3)

	blueprint := h.Gateway.GenerateBlueprint(c.Request().Context(), ai.BlueprintInput{
		RecentHealth: recent,
		Habits:       h.Store.Habits(),
	})

	return c.JSON(http.StatusOK, BlueprintResponse{Blueprint: blueprint})
}

func lastMetrics(metrics []models.HealthMetric, n int) []models.HealthMetric {
	if len(metrics) <= n {
		return metrics
	}
	return metrics[len(metrics)-n:]
}
