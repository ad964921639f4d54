package models

import "time"

// TimeRange selects the window a chart series covers.
type TimeRange string

const (
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeYear  TimeRange = "year"
)

// IsValid reports whether the time range is one of the known values.
func (r TimeRange) IsValid() bool {
	switch r {
	case RangeWeek, RangeMonth, RangeYear:
		return true
	default:
		return false
	}
}

// Progress is one habit's completion state for a single day.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Pct       int `json:"pct"`
}

// ChartPoint is one point of a completion-percentage series.
type ChartPoint struct {
	Day     time.Time `json:"day"`
	Percent int       `json:"percent"`
}

// CategorySummary aggregates the habits of one category.
type CategorySummary struct {
	Category Category `json:"category"`
	Progress int      `json:"progress"` // average completion pct across habits today
	Count    int      `json:"count"`
	Change   float64  `json:"change"` // period-over-period delta in percentage points
}

// WeeklySummary describes the current week, one completion count per weekday
// starting from the configured week start.
type WeeklySummary struct {
	Completions    []int `json:"completions"`
	Total          int   `json:"total"`
	CompletionRate int   `json:"completion_rate"`
	BestDay        int   `json:"best_day"` // index into Completions
}

// UserStats is the cached headline snapshot included in exports.
type UserStats struct {
	TotalStreak      int                  `json:"total_streak"`
	ValueAdded       float64              `json:"value_added"`
	CategoryProgress map[Category]float64 `json:"category_progress"`
	TotalHabits      int                  `json:"total_habits"`
	CompletedToday   int                  `json:"completed_today"`
}
