package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/nexus/backend/internal/ai"
	"example.com/nexus/backend/internal/models"
	"example.com/nexus/backend/internal/store"
)

const defaultOptimizationGoal = "Improve productivity and health"

// HabitsHandler serves the habit list, the toggle action and the AI
// suggestion flow.
type HabitsHandler struct {
	Store   *store.Store
	Gateway *ai.Service
}

// NewHabitsHandler builds the habits handler.
func NewHabitsHandler(st *store.Store, gateway *ai.Service) *HabitsHandler {
	return &HabitsHandler{Store: st, Gateway: gateway}
}

type CreateHabitRequest struct {
	Title    string `json:"title" validate:"required"`
	Category string `json:"category" validate:"required,oneof=Health Focus Learning Finance"`
}

type SuggestHabitsRequest struct {
	Goals string `json:"goals"`
}

type AcceptSuggestionRequest struct {
	Title          string                 `json:"title" validate:"required"`
	Category       string                 `json:"category" validate:"required,oneof=Health Focus Learning Finance"`
	MicroGoals     []AcceptMicroGoalInput `json:"micro_goals"`
	IsRefinement   bool                   `json:"is_refinement"`
	RefinementNote string                 `json:"refinement_note"`
}

type AcceptMicroGoalInput struct {
	Title string `json:"title" validate:"required"`
}

// List returns every habit.
func (h *HabitsHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]models.Habit{"habits": h.Store.Habits()})
}

// Create adds a user-defined habit. Duplicate titles are permitted.
func (h *HabitsHandler) Create(c echo.Context) error {
	var req CreateHabitRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	habit := h.Store.AddHabit(c.Request().Context(), models.Habit{
		Title:      strings.TrimSpace(req.Title),
		Category:   models.HabitCategory(req.Category),
		MicroGoals: []models.MicroGoal{},
	})

	return c.JSON(http.StatusCreated, map[string]models.Habit{"habit": habit})
}

// Toggle flips a habit's completion state and applies the streak rule.
func (h *HabitsHandler) Toggle(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid habit id")
	}

	habit, ok := h.Store.ToggleHabit(c.Request().Context(), id)
	if !ok {
		return notFound(c, "habit not found")
	}

	return c.JSON(http.StatusOK, map[string]models.Habit{"habit": habit})
}

// Suggest asks the gateway for new habits and refinements. The result is
// transient view state; nothing is stored until a suggestion is accepted.
// A gateway failure returns an empty list.
func (h *HabitsHandler) Suggest(c echo.Context) error {
	var req SuggestHabitsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	goals := strings.TrimSpace(req.Goals)
	if goals == "" {
		goals = defaultOptimizationGoal
	}

	suggestions := h.Gateway.SuggestHabits(c.Request().Context(), ai.SuggestHabitsInput{
		Habits: h.Store.Habits(),
		Goals:  goals,
	})

	return c.JSON(http.StatusOK, map[string][]ai.HabitSuggestion{"suggestions": suggestions})
}

// Accept merges an accepted suggestion into the store. A refinement whose
// title matches an existing habit replaces that habit's micro-goals;
// anything else becomes a new AI-recommended habit.
func (h *HabitsHandler) Accept(c echo.Context) error {
	var req AcceptSuggestionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	goals := make([]models.MicroGoal, 0, len(req.MicroGoals))
	for _, goal := range req.MicroGoals {
		goals = append(goals, models.MicroGoal{
			ID:    uuid.New(),
			Title: goal.Title,
		})
	}

	if req.IsRefinement {
		if habit, ok := h.Store.RefineHabit(c.Request().Context(), req.Title, goals); ok {
			return c.JSON(http.StatusOK, map[string]models.Habit{"habit": habit})
		}
	}

	habit := h.Store.AddHabit(c.Request().Context(), models.Habit{
		Title:         strings.TrimSpace(req.Title),
		Category:      models.HabitCategory(req.Category),
		MicroGoals:    goals,
		AIRecommended: true,
	})

	return c.JSON(http.StatusCreated, map[string]models.Habit{"habit": habit})
}
