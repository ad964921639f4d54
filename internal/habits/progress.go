package habits

import (
	"math"
	"time"

	"github.com/kmahoney/tend/internal/constants"
	"github.com/kmahoney/tend/internal/dates"
	"github.com/kmahoney/tend/internal/models"
)

// Percent computes a rounded completion percentage. Zero total is defined as
// 0%, not an error: a habit with no active todos is "0% done".
func Percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// ProgressOn derives one habit's completion state for a single day from the
// log. Pure reader; never mutates.
func ProgressOn(habit models.Habit, log models.CompletionLog, day string) models.Progress {
	active := habit.ActiveTodos()
	completed := 0
	for _, todo := range active {
		if log.IsDone(habit.ID, day, todo.ID) {
			completed++
		}
	}
	total := len(active)
	return models.Progress{
		Completed: completed,
		Total:     total,
		Pct:       Percent(completed, total),
	}
}

// DoneOn reports whether every active todo of the habit was completed on the
// day. A habit with zero active todos is never "done"; 0/0 must not count as
// the vacuous truth.
func DoneOn(habit models.Habit, log models.CompletionLog, day string) bool {
	p := ProgressOn(habit, log, day)
	return p.Total > 0 && p.Completed == p.Total
}

// StreakAsOf counts consecutive fully-completed days walking backward from
// asOf. The walk stops at the first failing day, at the habit's creation day,
// and at a hard cap so a malformed log can never loop forever.
func StreakAsOf(habit models.Habit, log models.CompletionLog, asOf time.Time) int {
	if len(habit.ActiveTodos()) == 0 {
		return 0
	}
	created := dates.Midnight(habit.CreatedAt)
	streak := 0
	for day := dates.Midnight(asOf); streak < constants.StreakMaxDays; day = dates.AddDays(day, -1) {
		if day.Before(created) {
			break
		}
		if !DoneOn(habit, log, dates.Day(day)) {
			break
		}
		streak++
	}
	return streak
}

// TodayProgress reports a habit's progress for the current day. A missing
// habit yields a zeroed result; display-path reads degrade instead of
// failing.
func (r *Repository) TodayProgress(habitID string) models.Progress {
	habit, ok := r.state.Habit(habitID)
	if !ok {
		return models.Progress{}
	}
	return ProgressOn(*habit, r.state.Completions, dates.Today())
}

// IsFullyDoneToday reports whether every active todo of the habit was
// completed today.
func (r *Repository) IsFullyDoneToday(habitID string) bool {
	habit, ok := r.state.Habit(habitID)
	if !ok {
		return false
	}
	return DoneOn(*habit, r.state.Completions, dates.Today())
}

// Streak reports the habit's current streak ending today.
func (r *Repository) Streak(habitID string) int {
	habit, ok := r.state.Habit(habitID)
	if !ok {
		return 0
	}
	return StreakAsOf(*habit, r.state.Completions, time.Now())
}
