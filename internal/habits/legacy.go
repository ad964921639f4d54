package habits

import (
	"sort"
	"time"

	"github.com/kmahoney/tend/internal/dates"
	"github.com/kmahoney/tend/internal/models"
)

// LegacyHabit projects one habit onto the older flat shape for consumers
// that have not migrated. A date is listed in CompletedDates only when every
// active todo was completed that day, the same all-or-nothing rule the streak
// uses. Read-side only.
func LegacyHabit(habit models.Habit, log models.CompletionLog, now time.Time) models.LegacyHabit {
	var completedDates []string
	for day := range log[habit.ID] {
		if DoneOn(habit, log, day) {
			completedDates = append(completedDates, day)
		}
	}
	sort.Strings(completedDates)

	today := dates.Day(now)
	progress := ProgressOn(habit, log, today)

	return models.LegacyHabit{
		ID:             habit.ID,
		Name:           habit.Title,
		Category:       habit.Category,
		Streak:         StreakAsOf(habit, log, now),
		CompletedDates: completedDates,
		Target:         progress.Total,
		Progress:       progress.Pct,
		CreatedAt:      habit.CreatedAt.Format(time.RFC3339),
	}
}

// LegacyHabits projects the full habit list.
func (r *Repository) LegacyHabits() []models.LegacyHabit {
	now := time.Now()
	out := make([]models.LegacyHabit, 0, len(r.state.Habits))
	for _, habit := range r.state.Habits {
		out = append(out, LegacyHabit(habit, r.state.Completions, now))
	}
	return out
}
