package store

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"example.com/nexus/backend/internal/models"
)

// TestToggleHabitStreak verifies that streaks only grow on the
// incomplete-to-complete transition.
func TestToggleHabitStreak(t *testing.T) {
	s := New()
	ctx := context.Background()

	habit := s.AddHabit(ctx, models.Habit{Title: "Evening Reading", Category: models.HabitCategoryLearning})
	if habit.ID == uuid.Nil {
		t.Fatal("expected habit id to be assigned")
	}

	toggled, ok := s.ToggleHabit(ctx, habit.ID)
	if !ok {
		t.Fatal("expected habit to be found")
	}
	if !toggled.Completed || toggled.Streak != 1 {
		t.Fatalf("expected completed with streak 1, got completed=%v streak=%d", toggled.Completed, toggled.Streak)
	}

	toggled, ok = s.ToggleHabit(ctx, habit.ID)
	if !ok {
		t.Fatal("expected habit to be found")
	}
	if toggled.Completed || toggled.Streak != 1 {
		t.Fatalf("expected incomplete with streak 1, got completed=%v streak=%d", toggled.Completed, toggled.Streak)
	}
}

// TestToggleHabitUnknownID verifies that an unknown id changes nothing.
func TestToggleHabitUnknownID(t *testing.T) {
	s := New()

	before := s.Habits()
	if _, ok := s.ToggleHabit(context.Background(), uuid.New()); ok {
		t.Fatal("expected unknown id to report no match")
	}

	after := s.Habits()
	if len(before) != len(after) {
		t.Fatalf("expected habit list unchanged, got %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i].Completed != after[i].Completed || before[i].Streak != after[i].Streak {
			t.Fatalf("habit %q changed on unknown-id toggle", before[i].Title)
		}
	}
}

// TestAddHabitDuplicateTitle verifies that duplicate titles are allowed.
func TestAddHabitDuplicateTitle(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := s.AddHabit(ctx, models.Habit{Title: "Morning Meditation", Category: models.HabitCategoryHealth})
	second := s.AddHabit(ctx, models.Habit{Title: "Morning Meditation", Category: models.HabitCategoryHealth})

	if first.ID == second.ID {
		t.Fatal("expected distinct ids for duplicate titles")
	}

	count := 0
	for _, habit := range s.Habits() {
		if habit.Title == "Morning Meditation" {
			count++
		}
	}
	if count != 3 {
		t.Fatalf("expected 3 habits with the title (1 seeded + 2 added), got %d", count)
	}
}

// TestRefineHabit verifies the case-insensitive micro-goal replacement.
func TestRefineHabit(t *testing.T) {
	s := New()
	ctx := context.Background()

	goals := []models.MicroGoal{
		{ID: uuid.New(), Title: "Sit for 10 mins"},
		{ID: uuid.New(), Title: "No phone before"},
	}

	refined, ok := s.RefineHabit(ctx, "morning meditation", goals)
	if !ok {
		t.Fatal("expected seeded habit to match case-insensitively")
	}
	if len(refined.MicroGoals) != 2 {
		t.Fatalf("expected 2 micro-goals, got %d", len(refined.MicroGoals))
	}
	if !refined.AIRecommended {
		t.Fatal("expected refined habit to be marked AI-recommended")
	}

	if _, ok := s.RefineHabit(ctx, "No Such Habit", goals); ok {
		t.Fatal("expected no match for unknown title")
	}
}

// TestHealthRangeWeek verifies the 7-day window over the seeded week.
func TestHealthRangeWeek(t *testing.T) {
	s := New()

	week := s.HealthRange(7)
	if len(week) != 7 {
		t.Fatalf("expected 7 seeded days, got %d", len(week))
	}

	for i := 1; i < len(week); i++ {
		if week[i].Date.Before(week[i-1].Date) {
			t.Fatalf("expected ascending dates, got %v before %v", week[i].Date, week[i-1].Date)
		}
	}

	all := s.HealthRange(0)
	if len(all) != 7 {
		t.Fatalf("expected all 7 entries for non-positive window, got %d", len(all))
	}
}

// TestAddTransactionLeavesBudgets verifies that budget spent totals are not
// recalculated from transactions.
func TestAddTransactionLeavesBudgets(t *testing.T) {
	s := New()

	var foodBefore int64
	for _, budget := range s.Budgets() {
		if budget.Category == "Food" {
			foodBefore = budget.SpentCents
		}
	}

	s.AddTransaction(context.Background(), models.Transaction{
		Category:    "Food",
		AmountCents: 9900,
		Merchant:    "Bakery",
	})

	for _, budget := range s.Budgets() {
		if budget.Category == "Food" && budget.SpentCents != foodBefore {
			t.Fatalf("expected spent unchanged at %d, got %d", foodBefore, budget.SpentCents)
		}
	}

	if len(s.Transactions()) != 5 {
		t.Fatalf("expected 5 transactions, got %d", len(s.Transactions()))
	}
}

// TestSaveJournalEntryOrder verifies newest-first ordering.
func TestSaveJournalEntryOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.SaveJournalEntry(ctx, models.JournalEntry{Content: "first"})
	s.SaveJournalEntry(ctx, models.JournalEntry{Content: "second"})

	entries := s.JournalEntries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Content != "second" || entries[1].Content != "first" {
		t.Fatalf("expected newest first, got %q then %q", entries[0].Content, entries[1].Content)
	}
	if entries[0].ID == uuid.Nil || entries[0].Date.IsZero() {
		t.Fatal("expected id and date to be stamped")
	}
}

// TestAppendChatMessagesSeq verifies monotonically increasing sequence
// numbers across appends.
func TestAppendChatMessagesSeq(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.AppendChatMessages(ctx,
		models.ChatMessage{Role: models.ChatRoleUser, Content: "hello"},
		models.ChatMessage{Role: models.ChatRoleAssistant, Content: "hi"},
	)

	messages := s.ChatMessages()
	if len(messages) != 3 {
		t.Fatalf("expected greeting plus 2 messages, got %d", len(messages))
	}
	for i := 1; i < len(messages); i++ {
		if messages[i].Seq <= messages[i-1].Seq {
			t.Fatalf("expected increasing seq, got %d after %d", messages[i].Seq, messages[i-1].Seq)
		}
	}
}

// TestClearChat verifies the reset to a single fresh greeting.
func TestClearChat(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.AppendChatMessages(ctx, models.ChatMessage{Role: models.ChatRoleUser, Content: "hello"})

	first := s.ClearChat(ctx)
	if len(first) != 1 {
		t.Fatalf("expected a single greeting, got %d messages", len(first))
	}
	if first[0].Role != models.ChatRoleAssistant {
		t.Fatalf("expected assistant greeting, got role %s", first[0].Role)
	}

	second := s.ClearChat(ctx)
	if first[0].ID == second[0].ID {
		t.Fatal("expected a fresh id on every clear")
	}
	if second[0].Seq <= first[0].Seq {
		t.Fatalf("expected seq to keep advancing, got %d after %d", second[0].Seq, first[0].Seq)
	}
}

// TestSetChatMessagesAdvancesSeq verifies hydration moves the counter past
// restored messages.
func TestSetChatMessagesAdvancesSeq(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.SetChatMessages([]models.ChatMessage{
		{ID: uuid.New(), Seq: 41, Role: models.ChatRoleUser, Content: "restored"},
	})

	appended := s.AppendChatMessages(ctx, models.ChatMessage{Role: models.ChatRoleAssistant, Content: "fresh"})
	if appended[0].Seq != 42 {
		t.Fatalf("expected seq 42 after restoring seq 41, got %d", appended[0].Seq)
	}
}

// TestDismissInsight verifies only anomalies can be dismissed.
func TestDismissInsight(t *testing.T) {
	s := New()
	ctx := context.Background()

	anomaly := models.Insight{ID: uuid.New(), Type: models.InsightTypeAnomaly, Title: "Spike", Description: "x"}
	pattern := models.Insight{ID: uuid.New(), Type: models.InsightTypePattern, Title: "Trend", Description: "y"}
	s.ReplaceInsights(ctx, []models.Insight{anomaly, pattern})

	if !s.DismissInsight(ctx, anomaly.ID) {
		t.Fatal("expected anomaly to be dismissible")
	}
	if s.DismissInsight(ctx, pattern.ID) {
		t.Fatal("expected pattern to be non-dismissible")
	}
	if len(s.Insights()) != 1 {
		t.Fatalf("expected 1 insight left, got %d", len(s.Insights()))
	}
}

// TestListenerNotified verifies persisted collections notify the listener
// with full snapshots.
func TestListenerNotified(t *testing.T) {
	s := New()
	ctx := context.Background()

	recorder := &recordingListener{}
	s.SetListener(recorder)

	s.SaveJournalEntry(ctx, models.JournalEntry{Content: "note"})
	if recorder.journalCalls != 1 || len(recorder.lastJournal) != 1 {
		t.Fatalf("expected one journal notification with one entry, got calls=%d len=%d", recorder.journalCalls, len(recorder.lastJournal))
	}

	s.AppendChatMessages(ctx, models.ChatMessage{Role: models.ChatRoleUser, Content: "hello"})
	if recorder.chatCalls != 1 || len(recorder.lastChat) != 2 {
		t.Fatalf("expected one chat notification with full log, got calls=%d len=%d", recorder.chatCalls, len(recorder.lastChat))
	}

	s.ClearChat(ctx)
	if recorder.chatCalls != 2 || len(recorder.lastChat) != 1 {
		t.Fatalf("expected clear to notify with single greeting, got calls=%d len=%d", recorder.chatCalls, len(recorder.lastChat))
	}
}

type recordingListener struct {
	journalCalls int
	chatCalls    int
	lastJournal  []models.JournalEntry
	lastChat     []models.ChatMessage
}

func (r *recordingListener) JournalChanged(_ context.Context, entries []models.JournalEntry) {
	r.journalCalls++
	r.lastJournal = entries
}

func (r *recordingListener) ChatChanged(_ context.Context, messages []models.ChatMessage) {
	r.chatCalls++
	r.lastChat = messages
}
