package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/kmahoney/tend/internal/models"
	"github.com/kmahoney/tend/internal/stats"
)

type StatsCmd struct {
	Range    string `short:"r" help:"Time range (week|month|year)." default:"week"`
	Category string `short:"c" help:"Only include habits in this category."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	repo, err := ctx.Repo()
	if err != nil {
		return err
	}

	rng := models.TimeRange(c.Range)
	if !rng.IsValid() {
		return fmt.Errorf("invalid time range %q (expected week|month|year)", c.Range)
	}

	var category models.Category
	if c.Category != "" {
		category, err = parseCategory(c.Category)
		if err != nil {
			return err
		}
	}

	now := time.Now()
	habitList := repo.Habits()
	log := repo.Completions()

	series := stats.Series(habitList, log, rng, category, now)
	if len(series) == 0 {
		fmt.Println("No data for the selected range.")
		return nil
	}

	label := "completion"
	if category != "" {
		label = string(category) + " completion"
	}
	fmt.Printf("%s (%s):\n\n", label, rng)

	format := pointLabelFormat(rng)
	for _, point := range series {
		bar := strings.Repeat("█", point.Percent/4)
		fmt.Printf("%8s %3d%% %s\n", point.Day.Format(format), point.Percent, bar)
	}

	summaries := stats.CategorySummaries(habitList, log, category, now)
	if len(summaries) > 0 {
		fmt.Println("\nBy category:")
		for _, s := range summaries {
			change := fmt.Sprintf("%+.1f", s.Change)
			fmt.Printf("  %-8s %3d%% avg today, %d habit(s), %s pts vs previous week\n",
				s.Category, s.Progress, s.Count, change)
		}
	}

	weekly := stats.WeeklySummary(stats.Filter(habitList, category), log, now)
	fmt.Printf("\nThis week: %d completions, %d%% rate\n", weekly.Total, weekly.CompletionRate)

	return nil
}

func pointLabelFormat(rng models.TimeRange) string {
	switch rng {
	case models.RangeYear:
		return "Jan"
	default:
		return "01/02"
	}
}
