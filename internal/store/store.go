package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"example.com/nexus/backend/internal/models"
)

const (
	welcomeMessage = "Hello. I am Nexus. I've analyzed your recent data. How can I assist you today?"
	clearedMessage = "Chat history cleared. How can I assist you today?"
)

// Listener is notified after every mutation of a persisted collection. The
// store passes a snapshot of the full collection; listeners must not call
// back into the store.
type Listener interface {
	JournalChanged(ctx context.Context, entries []models.JournalEntry)
	ChatChanged(ctx context.Context, messages []models.ChatMessage)
}

// Store owns every domain collection. All mutations are serialized behind a
// single mutex; no operation returns an error.
type Store struct {
	mu           sync.RWMutex
	health       []models.HealthMetric
	transactions []models.Transaction
	budgets      []models.Budget
	habits       []models.Habit
	insights     []models.Insight
	journal      []models.JournalEntry
	chat         []models.ChatMessage
	profile      models.UserProfile

	nextSeq  uint64
	listener Listener
}

// New builds a store seeded with the demo dataset: one week of health days
// ending today, a handful of transactions and budgets, two habits, a welcome
// chat message and a fixed user profile.
func New() *Store {
	s := &Store{nextSeq: 1}
	s.seed(time.Now())
	return s
}

// SetListener registers the persistence listener. Must be called before the
// store is shared.
func (s *Store) SetListener(l Listener) {
	s.listener = l
}

func (s *Store) seed(now time.Time) {
	day := func(offset int) time.Time {
		y, m, d := now.AddDate(0, 0, offset).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	}

	s.health = []models.HealthMetric{
		{Date: day(-6), SleepHours: 7.2, Steps: 8500, HeartRateAvg: 72, Mood: 8},
		{Date: day(-5), SleepHours: 6.5, Steps: 10200, HeartRateAvg: 75, Mood: 7},
		{Date: day(-4), SleepHours: 8.0, Steps: 6000, HeartRateAvg: 68, Mood: 9},
		{Date: day(-3), SleepHours: 5.5, Steps: 4000, HeartRateAvg: 80, Mood: 5},
		{Date: day(-2), SleepHours: 7.0, Steps: 9000, HeartRateAvg: 74, Mood: 8},
		{Date: day(-1), SleepHours: 9.0, Steps: 12000, HeartRateAvg: 65, Mood: 10},
		{Date: day(0), SleepHours: 8.5, Steps: 11000, HeartRateAvg: 66, Mood: 9},
	}

	s.transactions = []models.Transaction{
		{ID: uuid.New(), Date: day(-3), Category: "Food", AmountCents: 4550, Merchant: "Grocery Store"},
		{ID: uuid.New(), Date: day(-2), Category: "Transport", AmountCents: 1200, Merchant: "Uber"},
		{ID: uuid.New(), Date: day(-1), Category: "Entertainment", AmountCents: 2500, Merchant: "Cinema"},
		{ID: uuid.New(), Date: day(0), Category: "Food", AmountCents: 8500, Merchant: "Restaurant"},
	}

	s.budgets = []models.Budget{
		{Category: "Food", LimitCents: 50000, SpentCents: 32000},
		{Category: "Transport", LimitCents: 20000, SpentCents: 15000},
		{Category: "Entertainment", LimitCents: 15000, SpentCents: 14000},
		{Category: "Savings", LimitCents: 100000, SpentCents: 20000},
	}

	s.habits = []models.Habit{
		{
			ID:        uuid.New(),
			Title:     "Morning Meditation",
			Streak:    12,
			Completed: true,
			Category:  models.HabitCategoryHealth,
			MicroGoals: []models.MicroGoal{
				{ID: uuid.New(), Title: "Sit for 5 mins", Completed: true},
			},
		},
		{
			ID:        uuid.New(),
			Title:     "Deep Work Session",
			Streak:    5,
			Completed: false,
			Category:  models.HabitCategoryFocus,
			MicroGoals: []models.MicroGoal{
				{ID: uuid.New(), Title: "Phone in other room", Completed: false},
			},
		},
	}

	s.chat = []models.ChatMessage{
		{ID: uuid.New(), Seq: s.takeSeq(), Role: models.ChatRoleAssistant, Content: welcomeMessage, CreatedAt: now},
	}

	s.profile = models.UserProfile{
		Skills:           []string{"Programming", "Writing", "Data Analysis"},
		TimeAvailability: "15 hours/week",
		FinancialGoals:   "Save $5000 for a car, pay off student loans faster.",
	}
}

// takeSeq must be called with the write lock held.
func (s *Store) takeSeq() uint64 {
	seq := s.nextSeq
	s.nextSeq++
	return seq
}

// AddHabit appends a habit. Duplicate titles are permitted.
func (s *Store) AddHabit(_ context.Context, habit models.Habit) models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()

	if habit.ID == uuid.Nil {
		habit.ID = uuid.New()
	}
	if habit.MicroGoals == nil {
		habit.MicroGoals = []models.MicroGoal{}
	}
	s.habits = append(s.habits, habit)
	return habit
}

// ToggleHabit flips a habit's completion flag. The streak increments only on
// the incomplete-to-complete transition and never decrements. Unknown ids are
// a silent no-op.
func (s *Store) ToggleHabit(_ context.Context, id uuid.UUID) (models.Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.habits {
		if s.habits[i].ID != id {
			continue
		}
		if !s.habits[i].Completed {
			s.habits[i].Streak++
		}
		s.habits[i].Completed = !s.habits[i].Completed
		return s.habits[i], true
	}

	return models.Habit{}, false
}

// RefineHabit replaces the micro-goals of the habit with the given title
// (case-insensitive) and marks it AI-recommended. Reports whether a habit
// matched.
func (s *Store) RefineHabit(_ context.Context, title string, goals []models.MicroGoal) (models.Habit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.habits {
		if !strings.EqualFold(s.habits[i].Title, title) {
			continue
		}
		s.habits[i].MicroGoals = append([]models.MicroGoal(nil), goals...)
		s.habits[i].AIRecommended = true
		return s.habits[i], true
	}

	return models.Habit{}, false
}

// UpdateHealth appends a metric. The one-entry-per-date convention is not
// enforced here.
func (s *Store) UpdateHealth(_ context.Context, metric models.HealthMetric) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.health = append(s.health, metric)
}

// AddTransaction appends a transaction. Budget spent totals are not linked to
// transactions and stay untouched.
func (s *Store) AddTransaction(_ context.Context, tx models.Transaction) models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	s.transactions = append(s.transactions, tx)
	return tx
}

// SaveJournalEntry prepends an entry, keeping the journal newest-first.
func (s *Store) SaveJournalEntry(ctx context.Context, entry models.JournalEntry) models.JournalEntry {
	s.mu.Lock()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	s.journal = append([]models.JournalEntry{entry}, s.journal...)
	snapshot := append([]models.JournalEntry(nil), s.journal...)
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		listener.JournalChanged(ctx, snapshot)
	}
	return entry
}

// AppendChatMessages stamps ids, sequence numbers and timestamps onto the
// messages and appends them to the chat log.
func (s *Store) AppendChatMessages(ctx context.Context, messages ...models.ChatMessage) []models.ChatMessage {
	s.mu.Lock()
	now := time.Now()
	stamped := make([]models.ChatMessage, 0, len(messages))
	for _, msg := range messages {
		if msg.ID == uuid.Nil {
			msg.ID = uuid.New()
		}
		msg.Seq = s.takeSeq()
		if msg.CreatedAt.IsZero() {
			msg.CreatedAt = now
		}
		s.chat = append(s.chat, msg)
		stamped = append(stamped, msg)
	}
	snapshot := append([]models.ChatMessage(nil), s.chat...)
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		listener.ChatChanged(ctx, snapshot)
	}
	return stamped
}

// ClearChat resets the log to a single synthetic assistant greeting with a
// freshly generated id.
func (s *Store) ClearChat(ctx context.Context) []models.ChatMessage {
	s.mu.Lock()
	s.chat = []models.ChatMessage{{
		ID:        uuid.New(),
		Seq:       s.takeSeq(),
		Role:      models.ChatRoleAssistant,
		Content:   clearedMessage,
		CreatedAt: time.Now(),
	}}
	snapshot := append([]models.ChatMessage(nil), s.chat...)
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		listener.ChatChanged(ctx, snapshot)
	}
	return snapshot
}

// SetJournalEntries replaces the journal wholesale. Used only for hydration
// from storage; the listener is not notified.
func (s *Store) SetJournalEntries(entries []models.JournalEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.journal = append([]models.JournalEntry(nil), entries...)
}

// SetChatMessages replaces the chat log wholesale and advances the sequence
// counter past the restored messages. Used only for hydration.
func (s *Store) SetChatMessages(messages []models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chat = append([]models.ChatMessage(nil), messages...)
	for _, msg := range s.chat {
		if msg.Seq >= s.nextSeq {
			s.nextSeq = msg.Seq + 1
		}
	}
}

// ReplaceInsights discards the prior insight set.
func (s *Store) ReplaceInsights(_ context.Context, insights []models.Insight) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insights = append([]models.Insight(nil), insights...)
}

// DismissInsight removes an anomaly insight by id. Other insight types cannot
// be dismissed.
func (s *Store) DismissInsight(_ context.Context, id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.insights {
		if s.insights[i].ID != id || s.insights[i].Type != models.InsightTypeAnomaly {
			continue
		}
		s.insights = append(s.insights[:i], s.insights[i+1:]...)
		return true
	}

	return false
}

// HealthRange returns the metrics from the last N days inclusive of today,
// ordered by date ascending. A non-positive N returns everything.
func (s *Store) HealthRange(days int) []models.HealthMetric {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.HealthMetric, 0, len(s.health))
	if days <= 0 {
		out = append(out, s.health...)
	} else {
		cutoff := time.Now().AddDate(0, 0, -days)
		for _, metric := range s.health {
			if metric.Date.After(cutoff) {
				out = append(out, metric)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Habits returns a copy of the habit list.
func (s *Store) Habits() []models.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Habit, len(s.habits))
	for i, habit := range s.habits {
		habit.MicroGoals = append([]models.MicroGoal(nil), habit.MicroGoals...)
		out[i] = habit
	}
	return out
}

// Budgets returns a copy of the budget list.
func (s *Store) Budgets() []models.Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Budget(nil), s.budgets...)
}

// Transactions returns a copy of the transaction list.
func (s *Store) Transactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Transaction(nil), s.transactions...)
}

// Insights returns a copy of the current insight set.
func (s *Store) Insights() []models.Insight {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Insight(nil), s.insights...)
}

// JournalEntries returns a copy of the journal, newest first.
func (s *Store) JournalEntries() []models.JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.JournalEntry(nil), s.journal...)
}

// ChatMessages returns a copy of the chat log in send order.
func (s *Store) ChatMessages() []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.ChatMessage(nil), s.chat...)
}

// Profile returns the user profile.
func (s *Store) Profile() models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile := s.profile
	profile.Skills = append([]string(nil), profile.Skills...)
	return profile
}
