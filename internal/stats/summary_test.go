package stats

import (
	"testing"

	"github.com/kmahoney/tend/internal/dates"
	"github.com/kmahoney/tend/internal/models"
)

func TestCategorySummaries_SkipsEmptyCategories(t *testing.T) {
	habitList := []models.Habit{
		testHabit("h1", models.CategorySports, "2024-01-01", "a"),
		testHabit("h2", models.CategorySports, "2024-01-01", "b"),
	}
	log := make(models.CompletionLog)
	markDone(log, "h1", "2024-01-15", "a")

	now := mustDay(t, "2024-01-15")
	summaries := CategorySummaries(habitList, log, "", now)

	if len(summaries) != 1 {
		t.Fatalf("expected one summary for the one populated category, got %d", len(summaries))
	}
	s := summaries[0]
	if s.Category != models.CategorySports || s.Count != 2 {
		t.Errorf("unexpected summary: %+v", s)
	}
	// One habit at 100%, one at 0% -> average 50.
	if s.Progress != 50 {
		t.Errorf("expected average progress of 50, got %d", s.Progress)
	}
}

func TestCategorySummaries_ChangeIsPeriodDelta(t *testing.T) {
	habitList := []models.Habit{testHabit("h1", models.CategorySports, "2024-01-01", "a")}
	log := make(models.CompletionLog)

	now := mustDay(t, "2024-01-20")
	// Current period: Jan 14..20, fully complete. Previous: Jan 7..13, empty.
	for _, day := range dates.EachDay(mustDay(t, "2024-01-14"), now) {
		markDone(log, "h1", dates.Day(day), "a")
	}

	summaries := CategorySummaries(habitList, log, models.CategorySports, now)
	if len(summaries) != 1 {
		t.Fatalf("expected one summary, got %d", len(summaries))
	}
	if summaries[0].Change != 100 {
		t.Errorf("expected +100 point change, got %v", summaries[0].Change)
	}
}

func TestCategorySummaries_ScopedToCategory(t *testing.T) {
	habitList := []models.Habit{
		testHabit("h1", models.CategorySports, "2024-01-01", "a"),
		testHabit("h2", models.CategoryStudy, "2024-01-01", "b"),
	}
	log := make(models.CompletionLog)
	now := mustDay(t, "2024-01-15")

	summaries := CategorySummaries(habitList, log, models.CategoryStudy, now)
	if len(summaries) != 1 || summaries[0].Category != models.CategoryStudy {
		t.Errorf("expected only the study summary, got %+v", summaries)
	}
}

func TestWeeklySummary(t *testing.T) {
	habitList := []models.Habit{
		testHabit("h1", models.CategorySports, "2024-01-01", "a"),
		testHabit("h2", models.CategoryStudy, "2024-01-01", "b"),
	}
	log := make(models.CompletionLog)
	// Week of Mon Jan 1: both habits done Monday, one done Wednesday.
	markDone(log, "h1", "2024-01-01", "a")
	markDone(log, "h2", "2024-01-01", "b")
	markDone(log, "h1", "2024-01-03", "a")

	now := mustDay(t, "2024-01-07")
	summary := WeeklySummary(habitList, log, now)

	if len(summary.Completions) != 7 {
		t.Fatalf("expected 7 weekday slots, got %d", len(summary.Completions))
	}
	if summary.Completions[0] != 2 || summary.Completions[2] != 1 {
		t.Errorf("unexpected per-day counts: %v", summary.Completions)
	}
	if summary.Total != 3 {
		t.Errorf("expected total of 3, got %d", summary.Total)
	}
	if summary.BestDay != 0 {
		t.Errorf("expected Monday as best day, got index %d", summary.BestDay)
	}
	// 3 completions out of 2 habits * 7 days.
	if summary.CompletionRate != 21 {
		t.Errorf("expected 21%% completion rate, got %d", summary.CompletionRate)
	}
}

func TestUserStats(t *testing.T) {
	habitList := []models.Habit{
		testHabit("h1", models.CategorySports, "2024-01-01", "a"),
		testHabit("h2", models.CategoryStudy, "2024-01-01", "b"),
	}
	log := make(models.CompletionLog)
	markDone(log, "h1", "2024-01-14", "a")
	markDone(log, "h1", "2024-01-15", "a")

	now := mustDay(t, "2024-01-15")
	stats := UserStats(habitList, log, now)

	if stats.TotalHabits != 2 {
		t.Errorf("expected 2 habits, got %d", stats.TotalHabits)
	}
	if stats.CompletedToday != 1 {
		t.Errorf("expected 1 habit completed today, got %d", stats.CompletedToday)
	}
	if stats.TotalStreak != 2 {
		t.Errorf("expected best streak of 2, got %d", stats.TotalStreak)
	}
	if stats.ValueAdded != 50 {
		t.Errorf("expected overall average of 50, got %v", stats.ValueAdded)
	}
	if stats.CategoryProgress[models.CategorySports] != 100 {
		t.Errorf("expected sports at 100, got %v", stats.CategoryProgress[models.CategorySports])
	}
	if stats.CategoryProgress[models.CategoryStudy] != 0 {
		t.Errorf("expected study at 0, got %v", stats.CategoryProgress[models.CategoryStudy])
	}
}

func TestUserStats_EmptyList(t *testing.T) {
	stats := UserStats(nil, make(models.CompletionLog), mustDay(t, "2024-01-15"))
	if stats.TotalHabits != 0 || stats.ValueAdded != 0 || stats.CompletedToday != 0 {
		t.Errorf("expected zeroed stats for empty list, got %+v", stats)
	}
}
