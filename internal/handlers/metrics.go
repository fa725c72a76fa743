package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/nexus/backend/internal/models"
	"example.com/nexus/backend/internal/store"
)

const dateLayout = "2006-01-02"

// MetricsHandler serves the health view: the filtered metric range and the
// daily log form.
type MetricsHandler struct {
	Store *store.Store
}

// NewMetricsHandler builds the health metrics handler.
func NewMetricsHandler(st *store.Store) *MetricsHandler {
	return &MetricsHandler{Store: st}
}

type LogMetricRequest struct {
	Date         string  `json:"date" validate:"required"`
	SleepHours   float64 `json:"sleep_hours" validate:"gte=0"`
	Steps        int     `json:"steps" validate:"gte=0"`
	HeartRateAvg int     `json:"heart_rate_avg" validate:"gt=0"`
	Mood         int     `json:"mood" validate:"min=1,max=10"`
}

// List returns metrics for the requested timeframe: 7d (default), 30d or
// all, ordered by date ascending.
func (h *MetricsHandler) List(c echo.Context) error {
	days := 7
	switch c.QueryParam("timeframe") {
	case "", "7d":
		days = 7
	case "30d":
		days = 30
	case "all":
		days = 0
	default:
		return badRequest(c, "timeframe must be 7d, 30d or all")
	}

	metrics := h.Store.HealthRange(days)
	return c.JSON(http.StatusOK, map[string][]models.HealthMetric{"metrics": metrics})
}

// Log appends a metric for a calendar day. Duplicate dates are not rejected;
// one entry per day is the caller's convention.
func (h *MetricsHandler) Log(c echo.Context) error {
	var req LogMetricRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
	if err != nil {
		return badRequest(c, "date must be YYYY-MM-DD")
	}

	metric := models.HealthMetric{
		Date:         date,
		SleepHours:   req.SleepHours,
		Steps:        req.Steps,
		HeartRateAvg: req.HeartRateAvg,
		Mood:         req.Mood,
	}
	h.Store.UpdateHealth(c.Request().Context(), metric)

	return c.JSON(http.StatusCreated, map[string]models.HealthMetric{"metric": metric})
}
