package ai

import (
	"github.com/google/uuid"

	"example.com/nexus/backend/internal/models"
)

// Inputs are the store snapshots interpolated into the prompt templates.

type InsightsInput struct {
	Health  []models.HealthMetric `json:"health_last_7_days"`
	Habits  []models.Habit        `json:"habits"`
	Budgets []models.Budget       `json:"budgets"`
}

type SuggestHabitsInput struct {
	Habits []models.Habit `json:"current_habits"`
	Goals  string         `json:"optimization_goals"`
}

type BlueprintInput struct {
	RecentHealth []models.HealthMetric `json:"recent_health"`
	Habits       []models.Habit        `json:"habits"`
}

type FinanceSnapshot struct {
	Transactions []models.Transaction `json:"transactions"`
	Budgets      []models.Budget      `json:"budgets"`
}

type AnxietyInput struct {
	Budgets      []models.Budget       `json:"budgets"`
	RecentHealth []models.HealthMetric `json:"health_mood_data"`
}

type HabitSummary struct {
	Title     string `json:"title"`
	Streak    int    `json:"streak"`
	Completed bool   `json:"completed"`
}

type ChatInput struct {
	RecentHealth []models.HealthMetric `json:"recent_health"`
	Habits       []HabitSummary        `json:"current_habits"`
	Budgets      []models.Budget       `json:"budgets"`
	Query        string                `json:"-"`
}

// Response shapes. The camelCase field names below are part of the documented
// model contract: the prompt templates spell them out and the decoder expects
// them back verbatim.

type insightItem struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Actionable  bool   `json:"actionable"`
}

type SuggestedMicroGoal struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
}

// HabitSuggestion is a proposed new habit or a refinement of an existing one.
// ID, Streak, Completed and AIRecommended are stamped locally, not produced
// by the model.
type HabitSuggestion struct {
	ID             uuid.UUID            `json:"id"`
	Title          string               `json:"title"`
	Category       string               `json:"category"`
	MicroGoals     []SuggestedMicroGoal `json:"microGoals"`
	IsRefinement   bool                 `json:"isRefinement"`
	RefinementNote string               `json:"refinementNote,omitempty"`
	Streak         int                  `json:"streak"`
	Completed      bool                 `json:"completed"`
	AIRecommended  bool                 `json:"aiRecommended"`
}

type BlueprintBlock struct {
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type Blueprint struct {
	Summary string           `json:"summary"`
	Blocks  []BlueprintBlock `json:"blocks"`
}

type SpendingAnomaly struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Alert    string  `json:"alert"`
}

type FinancialHealthReport struct {
	Score            int               `json:"score"`
	Stability        string            `json:"stability"`
	Recommendations  []string          `json:"recommendations"`
	Anomalies        []SpendingAnomaly `json:"anomalies"`
	ArchitectureNote string            `json:"architectureNote,omitempty"`
}

type AnxietyReport struct {
	RiskLevel          string   `json:"riskLevel"`
	CorrelationInsight string   `json:"correlationInsight"`
	WellnessStrategies []string `json:"wellnessStrategies"`
}

type IncomeOpportunity struct {
	Title     string `json:"title"`
	Effort    string `json:"effort"`
	Potential string `json:"potential"`
}

type IncomeGrowthPlan struct {
	Opportunities []IncomeOpportunity `json:"opportunities"`
	SavingsTarget string              `json:"savingsTarget"`
}
