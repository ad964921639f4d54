package stats

import (
	"time"

	"github.com/kmahoney/tend/internal/constants"
	"github.com/kmahoney/tend/internal/dates"
	"github.com/kmahoney/tend/internal/habits"
	"github.com/kmahoney/tend/internal/models"
)

// Filter narrows a habit list to one category. An empty category keeps
// everything.
func Filter(habitList []models.Habit, category models.Category) []models.Habit {
	if category == "" {
		return habitList
	}
	var out []models.Habit
	for _, h := range habitList {
		if h.Category == category {
			out = append(out, h)
		}
	}
	return out
}

// Series produces the time-ordered completion-percentage series for a time
// range: per-day points for the current week, weekly buckets over the last 30
// days, monthly buckets since January 1. Habits and log are borrowed
// read-only.
func Series(habitList []models.Habit, log models.CompletionLog, rng models.TimeRange, category models.Category, now time.Time) []models.ChartPoint {
	habitList = Filter(habitList, category)

	var points []models.ChartPoint
	switch rng {
	case models.RangeWeek:
		points = groupByDay(habitList, log, dates.StartOfWeek(now), now)
	case models.RangeMonth:
		start := dates.AddDays(dates.StartOfMonth(now), -constants.MonthWindowDays)
		points = groupByWeek(habitList, log, start, now)
	case models.RangeYear:
		points = groupByMonth(habitList, log, dates.StartOfYear(now), now)
	default:
		points = groupByDay(habitList, log, dates.StartOfWeek(now), now)
	}

	return Downsample(points, constants.ChartMaxPoints)
}

// doneCount counts habits fully completed on a day.
func doneCount(habitList []models.Habit, log models.CompletionLog, day time.Time) int {
	completed := 0
	for _, h := range habitList {
		if habits.DoneOn(h, log, dates.Day(day)) {
			completed++
		}
	}
	return completed
}

func groupByDay(habitList []models.Habit, log models.CompletionLog, start, end time.Time) []models.ChartPoint {
	var points []models.ChartPoint
	for _, day := range dates.EachDay(start, end) {
		points = append(points, models.ChartPoint{
			Day:     day,
			Percent: habits.Percent(doneCount(habitList, log, day), len(habitList)),
		})
	}
	return points
}

// groupByWeek buckets completions per week; boundary weeks count only their
// in-window days.
func groupByWeek(habitList []models.Habit, log models.CompletionLog, start, end time.Time) []models.ChartPoint {
	var points []models.ChartPoint
	for _, weekStart := range dates.EachWeekStart(start, end) {
		completions, possible := 0, 0
		for _, day := range dates.EachDay(weekStart, dates.AddDays(weekStart, 6)) {
			if !dates.Within(day, start, end) {
				continue
			}
			completions += doneCount(habitList, log, day)
			possible += len(habitList)
		}
		points = append(points, models.ChartPoint{
			Day:     weekStart,
			Percent: habits.Percent(completions, possible),
		})
	}
	return points
}

func groupByMonth(habitList []models.Habit, log models.CompletionLog, start, end time.Time) []models.ChartPoint {
	var points []models.ChartPoint
	for _, monthStart := range dates.EachMonthStart(start, end) {
		monthEnd := monthStart.AddDate(0, 1, -1)
		completions, possible := 0, 0
		for _, day := range dates.EachDay(monthStart, monthEnd) {
			if !dates.Within(day, start, end) {
				continue
			}
			completions += doneCount(habitList, log, day)
			possible += len(habitList)
		}
		points = append(points, models.ChartPoint{
			Day:     monthStart,
			Percent: habits.Percent(completions, possible),
		})
	}
	return points
}

// Downsample thins a series to at most maxPoints by fixed-stride subsampling.
// Keeping every Nth point preserves tick alignment; no interpolation.
func Downsample(points []models.ChartPoint, maxPoints int) []models.ChartPoint {
	if maxPoints <= 0 || len(points) <= maxPoints {
		return points
	}
	step := (len(points) + maxPoints - 1) / maxPoints
	var out []models.ChartPoint
	for i := 0; i < len(points); i += step {
		out = append(out, points[i])
	}
	return out
}
