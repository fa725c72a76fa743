package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"example.com/nexus/backend/internal/models"
)

const (
	systemInstruction = "You are the Nexus intelligence engine. Respond with JSON only, without extra text."

	fallbackInsightTitle       = "Analysis Failed"
	fallbackInsightDescription = "Could not connect to Nexus Intelligence Engine."
	emptyChatReply             = "I'm processing that data. Give me a moment."

	riskLow    = "Low"
	riskMedium = "Medium"
	riskHigh   = "High"
)

// Service is the stateless gateway between store snapshots and the model.
// Every JSON operation builds a deterministic prompt, issues one request,
// validates the decoded payload and converts any failure into the feature's
// safe fallback. Nothing here retries, batches or deduplicates calls.
type Service struct {
	client Client
}

// NewService builds the gateway around a transport client.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// GenerateInsights analyzes health, habit and budget data. On failure it
// returns a single synthetic anomaly so the dashboard always has something
// to render.
func (s *Service) GenerateInsights(ctx context.Context, input InsightsInput) []models.Insight {
	prompt, err := buildInsightsPrompt(input)
	if err != nil {
		warn("insights", err)
		return fallbackInsights()
	}

	var items []insightItem
	if err := s.generateJSON(ctx, prompt, &items); err != nil {
		warn("insights", err)
		return fallbackInsights()
	}

	insights := make([]models.Insight, 0, len(items))
	now := time.Now().UTC()
	for _, item := range items {
		insightType, ok := mapInsightType(item.Type)
		if !ok {
			warn("insights", fmt.Errorf("invalid insight type: %s", item.Type))
			return fallbackInsights()
		}
		if strings.TrimSpace(item.Title) == "" || strings.TrimSpace(item.Description) == "" {
			warn("insights", errors.New("insight title and description are required"))
			return fallbackInsights()
		}

		insights = append(insights, models.Insight{
			ID:          uuid.New(),
			Type:        insightType,
			Title:       item.Title,
			Description: item.Description,
			Actionable:  item.Actionable,
			Date:        now,
		})
	}

	if len(insights) == 0 {
		warn("insights", errors.New("model returned no insights"))
		return fallbackInsights()
	}

	return insights
}

// SuggestHabits asks for new micro-habits and refinements of existing ones.
// Failure yields an empty list.
func (s *Service) SuggestHabits(ctx context.Context, input SuggestHabitsInput) []HabitSuggestion {
	prompt, err := buildSuggestHabitsPrompt(input)
	if err != nil {
		warn("habit suggestions", err)
		return []HabitSuggestion{}
	}

	var suggestions []HabitSuggestion
	if err := s.generateJSON(ctx, prompt, &suggestions); err != nil {
		warn("habit suggestions", err)
		return []HabitSuggestion{}
	}

	out := make([]HabitSuggestion, 0, len(suggestions))
	for _, suggestion := range suggestions {
		category, ok := mapHabitCategory(suggestion.Category)
		if !ok {
			warn("habit suggestions", fmt.Errorf("invalid habit category: %s", suggestion.Category))
			return []HabitSuggestion{}
		}
		if strings.TrimSpace(suggestion.Title) == "" {
			warn("habit suggestions", errors.New("suggestion title is required"))
			return []HabitSuggestion{}
		}

		suggestion.ID = uuid.New()
		suggestion.Category = string(category)
		suggestion.Streak = 0
		suggestion.Completed = false
		suggestion.AIRecommended = true
		for i := range suggestion.MicroGoals {
			suggestion.MicroGoals[i].ID = uuid.New()
			suggestion.MicroGoals[i].Completed = false
		}
		out = append(out, suggestion)
	}

	return out
}

// GenerateBlueprint builds the adaptive daily schedule. Failure yields nil,
// which the blueprint view renders as its error card.
func (s *Service) GenerateBlueprint(ctx context.Context, input BlueprintInput) *Blueprint {
	prompt, err := buildBlueprintPrompt(input)
	if err != nil {
		warn("blueprint", err)
		return nil
	}

	var blueprint Blueprint
	if err := s.generateJSON(ctx, prompt, &blueprint); err != nil {
		warn("blueprint", err)
		return nil
	}

	if err := validateBlueprint(blueprint); err != nil {
		warn("blueprint", err)
		return nil
	}

	return &blueprint
}

// AnalyzeJournal runs the sentiment and distress analysis for one entry.
// Failure yields nil; the entry is still saved without an analysis.
func (s *Service) AnalyzeJournal(ctx context.Context, content string) *models.JournalAnalysis {
	prompt := buildJournalPrompt(content)

	var analysis models.JournalAnalysis
	if err := s.generateJSON(ctx, prompt, &analysis); err != nil {
		warn("journal analysis", err)
		return nil
	}

	sentiment, ok := mapSentiment(string(analysis.Sentiment))
	if !ok {
		warn("journal analysis", fmt.Errorf("invalid sentiment: %s", analysis.Sentiment))
		return nil
	}
	analysis.Sentiment = sentiment
	if analysis.Suggestions == nil {
		analysis.Suggestions = []string{}
	}

	return &analysis
}

// AnalyzeFinancialHealth scores the user's finances 0-100 with stability and
// anomaly notes. Failure yields nil.
func (s *Service) AnalyzeFinancialHealth(ctx context.Context, input FinanceSnapshot) *FinancialHealthReport {
	prompt, err := buildFinancialHealthPrompt(input)
	if err != nil {
		warn("financial health", err)
		return nil
	}

	var report FinancialHealthReport
	if err := s.generateJSON(ctx, prompt, &report); err != nil {
		warn("financial health", err)
		return nil
	}

	if report.Score < 0 || report.Score > 100 {
		warn("financial health", fmt.Errorf("score out of range: %d", report.Score))
		return nil
	}
	if strings.TrimSpace(report.Stability) == "" {
		warn("financial health", errors.New("stability is required"))
		return nil
	}

	return &report
}

// AnalyzeFinancialAnxiety correlates budgets with recent mood data. Failure
// yields nil.
func (s *Service) AnalyzeFinancialAnxiety(ctx context.Context, input AnxietyInput) *AnxietyReport {
	prompt, err := buildAnxietyPrompt(input)
	if err != nil {
		warn("financial anxiety", err)
		return nil
	}

	var report AnxietyReport
	if err := s.generateJSON(ctx, prompt, &report); err != nil {
		warn("financial anxiety", err)
		return nil
	}

	risk, ok := mapRiskLevel(report.RiskLevel)
	if !ok {
		warn("financial anxiety", fmt.Errorf("invalid risk level: %s", report.RiskLevel))
		return nil
	}
	report.RiskLevel = risk

	return &report
}

// RecommendIncomeGrowth suggests income opportunities and a savings target
// for the user profile. Failure yields nil.
func (s *Service) RecommendIncomeGrowth(ctx context.Context, profile models.UserProfile) *IncomeGrowthPlan {
	prompt := buildIncomeGrowthPrompt(profile)

	var plan IncomeGrowthPlan
	if err := s.generateJSON(ctx, prompt, &plan); err != nil {
		warn("income growth", err)
		return nil
	}

	if len(plan.Opportunities) == 0 && strings.TrimSpace(plan.SavingsTarget) == "" {
		warn("income growth", errors.New("plan has no opportunities or savings target"))
		return nil
	}

	return &plan
}

// ChatReply answers a free-text query with the user's current context
// attached. Unlike the JSON operations the fallback message for a failed turn
// is appended by the caller, so transport errors surface here.
func (s *Service) ChatReply(ctx context.Context, input ChatInput) (string, error) {
	payload, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`You are Nexus, a highly advanced personal AI assistant. You are concise, intelligent, and proactive. You help the user optimize their life, habits, and health.

Current User Context:
%s

User query: %s`, string(payload), input.Query)

	content, err := s.client.Generate(ctx, Request{
		Messages: []Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(content) == "" {
		return emptyChatReply, nil
	}

	return content, nil
}

func (s *Service) generateJSON(ctx context.Context, prompt string, target interface{}) error {
	content, err := s.client.Generate(ctx, Request{
		Messages: []Message{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: prompt},
		},
		JSONOnly: true,
	})
	if err != nil {
		return err
	}

	return parseJSON(content, target)
}

func buildInsightsPrompt(input InsightsInput) (string, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Analyze the following user data for the "Nexus" personal intelligence system.
Identify patterns, anomalies, and actionable recommendations.

Data Context:
%s

Output JSON format:
[
  {
    "type": "pattern" | "anomaly" | "recommendation",
    "title": "Short Title",
    "description": "Concise explanation",
    "actionable": boolean
  }
]

Keep it strictly JSON. No markdown.`, string(payload))

	return prompt, nil
}

func buildSuggestHabitsPrompt(input SuggestHabitsInput) (string, error) {
	habits, err := json.Marshal(input.Habits)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`You are the Nexus Intelligence Engine.

User's Current Habits: %s
User's Optimization Goals: %q

Tasks:
1. Suggest 2-3 NEW micro-habits that align with their goals.
2. Suggest REFINEMENTS for 1-2 existing habits (e.g., adding specific micro-goals or adjusting frequency).

Return a combined list of habits. For refinements, use the existing habit's title but update the microGoals.

Return JSON format:
[
  {
    "title": "Habit Title",
    "category": "Health" | "Focus" | "Learning" | "Finance",
    "microGoals": [{"title": "Micro goal text", "completed": false}],
    "isRefinement": boolean,
    "refinementNote": "Why this refinement was suggested"
  }
]

Keep it strictly JSON.`, string(habits), input.Goals)

	return prompt, nil
}

func buildBlueprintPrompt(input BlueprintInput) (string, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Generate a personalized daily health and productivity blueprint based on the user's past behavior.

%s

Create a schedule with 4-5 key blocks (e.g., Morning Routine, Deep Work, Active Recovery, Evening Wind Down).
Adapt the schedule based on their recent sleep and activity. If sleep is low, suggest more recovery.

Return JSON format:
{
  "summary": "A brief motivational summary of today's focus.",
  "blocks": [
    {
      "time": "e.g., 08:00 AM - 09:00 AM",
      "title": "Block Title",
      "description": "What to do and why it helps today.",
      "type": "focus" | "recovery" | "health" | "routine"
    }
  ]
}`, string(payload))

	return prompt, nil
}

func buildJournalPrompt(content string) string {
	return fmt.Sprintf(`Analyze the following journal entry for emotional distress, sentiment, and actionable wellness tips.
Maintain strict privacy and ethical standards. If severe distress is detected, suggest seeking professional support gently.

Journal Entry: %q

Return JSON format:
{
  "sentiment": "positive" | "neutral" | "negative" | "distressed",
  "analysis": "Brief empathetic analysis of the emotional state.",
  "suggestions": ["Actionable wellness tip 1", "Actionable wellness tip 2"],
  "requiresSupport": boolean
}`, content)
}

func buildFinancialHealthPrompt(input FinanceSnapshot) (string, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Analyze the following user financial data:
%s

Tasks:
1. Generate a Financial Health Score (0-100).
2. Predict end-of-month financial stability (e.g., "Stable", "At Risk", "Surplus").
3. Provide an adaptive budget recommendation logic (suggest personalized adjustments).
4. Detect anomalies for unusual spending and create predictive alerts.

Return JSON format:
{
  "score": 85,
  "stability": "Stable",
  "recommendations": ["Reduce entertainment by 10%% to hit savings goal"],
  "anomalies": [{"category": "Food", "amount": 85, "alert": "Unusual spike in dining out"}]
}`, string(payload))

	return prompt, nil
}

func buildAnxietyPrompt(input AnxietyInput) (string, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Correlate financial data with mood and stress levels to detect financial anxiety risk.

%s

Tasks:
1. Determine Financial Anxiety Risk (Low, Medium, High).
2. Suggest preventive financial planning and wellness strategies.

Return JSON format:
{
  "riskLevel": "Medium",
  "correlationInsight": "Mood drops on days with high spending.",
  "wellnessStrategies": ["Practice mindful spending", "Review budget weekly to reduce uncertainty"]
}`, string(payload))

	return prompt, nil
}

func buildIncomeGrowthPrompt(profile models.UserProfile) string {
	return fmt.Sprintf(`Create an AI-based income growth recommendation system.

User Profile:
Skills: %s
Time Availability: %s
Financial Goals: %s

Tasks:
Suggest realistic income opportunities and savings targets based on skills and time.

Return JSON format:
{
  "opportunities": [
    {"title": "Freelance Web Dev", "effort": "Medium", "potential": "$200/week"}
  ],
  "savingsTarget": "Save $100/week to hit $5000 goal in 1 year."
}`, strings.Join(profile.Skills, ", "), profile.TimeAvailability, profile.FinancialGoals)
}

func parseJSON(input string, target interface{}) error {
	payload := extractJSON(input)
	if payload == "" {
		return errors.New("ai response does not contain json")
	}

	return json.Unmarshal([]byte(payload), target)
}

func extractJSON(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimPrefix(strings.TrimSpace(trimmed), "json")
		trimmed = strings.TrimSpace(trimmed)
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}

	objStart := strings.Index(trimmed, "{")
	arrStart := strings.Index(trimmed, "[")

	start, closer := objStart, "}"
	if objStart == -1 || (arrStart != -1 && arrStart < objStart) {
		start, closer = arrStart, "]"
	}

	end := strings.LastIndex(trimmed, closer)
	if start == -1 || end == -1 || end <= start {
		return ""
	}

	return trimmed[start : end+1]
}

func fallbackInsights() []models.Insight {
	return []models.Insight{{
		ID:          uuid.New(),
		Type:        models.InsightTypeAnomaly,
		Title:       fallbackInsightTitle,
		Description: fallbackInsightDescription,
		Actionable:  false,
		Date:        time.Now().UTC(),
	}}
}

func validateBlueprint(blueprint Blueprint) error {
	if strings.TrimSpace(blueprint.Summary) == "" {
		return errors.New("blueprint summary is required")
	}
	if len(blueprint.Blocks) == 0 {
		return errors.New("blueprint blocks are required")
	}

	for _, block := range blueprint.Blocks {
		if strings.TrimSpace(block.Title) == "" {
			return errors.New("block title is required")
		}
		if !isBlockType(block.Type) {
			return fmt.Errorf("invalid block type: %s", block.Type)
		}
	}

	return nil
}

func mapInsightType(value string) (models.InsightType, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(models.InsightTypePattern):
		return models.InsightTypePattern, true
	case string(models.InsightTypeAnomaly):
		return models.InsightTypeAnomaly, true
	case string(models.InsightTypeRecommendation):
		return models.InsightTypeRecommendation, true
	default:
		return "", false
	}
}

func mapHabitCategory(value string) (models.HabitCategory, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "health":
		return models.HabitCategoryHealth, true
	case "focus":
		return models.HabitCategoryFocus, true
	case "learning":
		return models.HabitCategoryLearning, true
	case "finance":
		return models.HabitCategoryFinance, true
	default:
		return "", false
	}
}

func mapSentiment(value string) (models.Sentiment, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(models.SentimentPositive):
		return models.SentimentPositive, true
	case string(models.SentimentNeutral):
		return models.SentimentNeutral, true
	case string(models.SentimentNegative):
		return models.SentimentNegative, true
	case string(models.SentimentDistressed):
		return models.SentimentDistressed, true
	default:
		return "", false
	}
}

func mapRiskLevel(value string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "low":
		return riskLow, true
	case "medium":
		return riskMedium, true
	case "high":
		return riskHigh, true
	default:
		return "", false
	}
}

func isBlockType(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "focus", "recovery", "health", "routine":
		return true
	default:
		return false
	}
}

func warn(feature string, err error) {
	slog.Warn("ai gateway fallback", slog.String("feature", feature), slog.String("error", err.Error()))
}
