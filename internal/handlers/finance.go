package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"example.com/nexus/backend/internal/ai"
	"example.com/nexus/backend/internal/models"
	"example.com/nexus/backend/internal/store"
)

// FinanceHandler serves the finance overview and the combined AI analysis.
type FinanceHandler struct {
	Store   *store.Store
	Gateway *ai.Service
}

// NewFinanceHandler builds the finance handler.
func NewFinanceHandler(st *store.Store, gateway *ai.Service) *FinanceHandler {
	return &FinanceHandler{Store: st, Gateway: gateway}
}

type FinanceOverviewResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Budgets      []models.Budget      `json:"budgets"`
}

type FinanceAnalysisResponse struct {
	Health       *ai.FinancialHealthReport `json:"health"`
	Anxiety      *ai.AnxietyReport         `json:"anxiety"`
	IncomeGrowth *ai.IncomeGrowthPlan      `json:"income_growth"`
}

// Overview returns transactions and budgets.
func (h *FinanceHandler) Overview(c echo.Context) error {
	return c.JSON(http.StatusOK, FinanceOverviewResponse{
		Transactions: h.Store.Transactions(),
		Budgets:      h.Store.Budgets(),
	})
}

// Analyze runs the three finance analyses concurrently and responds once all
// settle. Each analysis falls back to nil independently, so a failure in one
// never blocks or invalidates the others.
func (h *FinanceHandler) Analyze(c echo.Context) error {
	snapshot := ai.FinanceSnapshot{
		Transactions: h.Store.Transactions(),
		Budgets:      h.Store.Budgets(),
	}
	recentHealth := h.Store.HealthRange(7)
	profile := h.Store.Profile()

	var response FinanceAnalysisResponse

	group, ctx := errgroup.WithContext(c.Request().Context())
	group.Go(func() error {
		response.Health = h.Gateway.AnalyzeFinancialHealth(ctx, snapshot)
		return nil
	})
	group.Go(func() error {
		response.Anxiety = h.Gateway.AnalyzeFinancialAnxiety(ctx, ai.AnxietyInput{
			Budgets:      snapshot.Budgets,
			RecentHealth: recentHealth,
		})
		return nil
	})
	group.Go(func() error {
		response.IncomeGrowth = h.Gateway.RecommendIncomeGrowth(ctx, profile)
		return nil
	})
	_ = group.Wait()

	return c.JSON(http.StatusOK, response)
}
