package models

import (
	"time"

	"github.com/google/uuid"
)

type HabitCategory string

type InsightType string

type ChatRole string

type Sentiment string

const (
	HabitCategoryHealth   HabitCategory = "Health"
	HabitCategoryFocus    HabitCategory = "Focus"
	HabitCategoryLearning HabitCategory = "Learning"
	HabitCategoryFinance  HabitCategory = "Finance"

	InsightTypePattern        InsightType = "pattern"
	InsightTypeAnomaly        InsightType = "anomaly"
	InsightTypeRecommendation InsightType = "recommendation"

	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"

	SentimentPositive   Sentiment = "positive"
	SentimentNeutral    Sentiment = "neutral"
	SentimentNegative   Sentiment = "negative"
	SentimentDistressed Sentiment = "distressed"
)

// HealthMetric is one logged calendar day. The store appends without
// de-duplicating dates; callers own the one-entry-per-day convention.
type HealthMetric struct {
	Date         time.Time `json:"date"`
	SleepHours   float64   `json:"sleep_hours"`
	Steps        int       `json:"steps"`
	HeartRateAvg int       `json:"heart_rate_avg"`
	Mood         int       `json:"mood"`
}

type Transaction struct {
	ID          uuid.UUID `json:"id"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	AmountCents int64     `json:"amount_cents"`
	Merchant    string    `json:"merchant"`
}

// Budget tracks a spending category. SpentCents is seeded and is not
// recalculated when transactions are added.
type Budget struct {
	Category   string `json:"category"`
	LimitCents int64  `json:"limit_cents"`
	SpentCents int64  `json:"spent_cents"`
}

type MicroGoal struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
}

type Habit struct {
	ID            uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Streak        int           `json:"streak"`
	Completed     bool          `json:"completed"`
	Category      HabitCategory `json:"category"`
	MicroGoals    []MicroGoal   `json:"micro_goals"`
	AIRecommended bool          `json:"ai_recommended,omitempty"`
}

type Insight struct {
	ID          uuid.UUID   `json:"id"`
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Actionable  bool        `json:"actionable"`
	Date        time.Time   `json:"date"`
}

// JournalAnalysis carries the model's verdict through unchanged; the field
// names follow the documented response contract.
type JournalAnalysis struct {
	Sentiment       Sentiment `json:"sentiment"`
	Analysis        string    `json:"analysis"`
	Suggestions     []string  `json:"suggestions"`
	RequiresSupport bool      `json:"requiresSupport"`
}

type JournalEntry struct {
	ID       uuid.UUID        `json:"id"`
	Date     time.Time        `json:"date"`
	Content  string           `json:"content"`
	Analysis *JournalAnalysis `json:"analysis"`
}

// ChatMessage is one turn in the append-only chat log. Seq is assigned by the
// store and increases monotonically within a session.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	Seq       uint64    `json:"seq"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type UserProfile struct {
	Skills           []string `json:"skills"`
	TimeAvailability string   `json:"time_availability"`
	FinancialGoals   string   `json:"financial_goals"`
}

// User is the mock session identity; no credentials are stored.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
