package stats

import (
	"math"
	"time"

	"github.com/kmahoney/tend/internal/dates"
	"github.com/kmahoney/tend/internal/habits"
	"github.com/kmahoney/tend/internal/models"
)

// completionRate is the share of fully-completed habit-days over the closed
// day interval, as a percentage.
func completionRate(habitList []models.Habit, log models.CompletionLog, start, end time.Time) int {
	completions, possible := 0, 0
	for _, day := range dates.EachDay(start, end) {
		completions += doneCount(habitList, log, day)
		possible += len(habitList)
	}
	return habits.Percent(completions, possible)
}

// CategorySummaries aggregates per-category progress for every category with
// at least one habit. Change is a real period-over-period delta: the last
// seven days' completion rate against the seven days before that.
func CategorySummaries(habitList []models.Habit, log models.CompletionLog, category models.Category, now time.Time) []models.CategorySummary {
	today := dates.Day(now)

	var summaries []models.CategorySummary
	for _, cat := range models.Categories() {
		if category != "" && cat != category {
			continue
		}
		group := Filter(habitList, cat)
		if len(group) == 0 {
			continue
		}

		sum := 0
		for _, h := range group {
			sum += habits.ProgressOn(h, log, today).Pct
		}

		currentStart := dates.AddDays(dates.Midnight(now), -6)
		previousStart := dates.AddDays(currentStart, -7)
		current := completionRate(group, log, currentStart, now)
		previous := completionRate(group, log, previousStart, dates.AddDays(currentStart, -1))

		summaries = append(summaries, models.CategorySummary{
			Category: cat,
			Progress: int(math.Round(float64(sum) / float64(len(group)))),
			Count:    len(group),
			Change:   float64(current - previous),
		})
	}
	return summaries
}

// WeeklySummary reports per-weekday completion counts for the current week,
// starting from the configured week start.
func WeeklySummary(habitList []models.Habit, log models.CompletionLog, now time.Time) models.WeeklySummary {
	weekStart := dates.StartOfWeek(now)

	completions := make([]int, 7)
	total := 0
	bestDay := 0
	for i := 0; i < 7; i++ {
		day := dates.AddDays(weekStart, i)
		completions[i] = doneCount(habitList, log, day)
		total += completions[i]
		if completions[i] > completions[bestDay] {
			bestDay = i
		}
	}

	return models.WeeklySummary{
		Completions:    completions,
		Total:          total,
		CompletionRate: habits.Percent(total, len(habitList)*7),
		BestDay:        bestDay,
	}
}

// UserStats computes the headline snapshot: best current streak, habits fully
// done today, average progress overall and per category.
func UserStats(habitList []models.Habit, log models.CompletionLog, now time.Time) models.UserStats {
	today := dates.Day(now)

	stats := models.UserStats{
		CategoryProgress: make(map[models.Category]float64),
		TotalHabits:      len(habitList),
	}

	categorySums := make(map[models.Category]int)
	categoryCounts := make(map[models.Category]int)
	progressSum := 0

	for _, h := range habitList {
		if streak := habits.StreakAsOf(h, log, now); streak > stats.TotalStreak {
			stats.TotalStreak = streak
		}
		if habits.DoneOn(h, log, today) {
			stats.CompletedToday++
		}
		pct := habits.ProgressOn(h, log, today).Pct
		progressSum += pct
		categorySums[h.Category] += pct
		categoryCounts[h.Category]++
	}

	for cat, sum := range categorySums {
		stats.CategoryProgress[cat] = round2(float64(sum) / float64(categoryCounts[cat]))
	}
	if len(habitList) > 0 {
		stats.ValueAdded = round2(float64(progressSum) / float64(len(habitList)))
	}

	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
