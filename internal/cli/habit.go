package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kmahoney/tend/internal/habits"
	"github.com/kmahoney/tend/internal/models"
)

var (
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	streakStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with today's progress."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its completion history."`
}

type HabitAddCmd struct {
	Title    string   `arg:"" help:"Habit title."`
	Category string   `short:"c" help:"Category (sports|finance|study|work|health|custom)." default:"custom"`
	Todos    []string `short:"t" help:"Initial todo titles (repeatable)."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	repo, err := ctx.Repo()
	if err != nil {
		return err
	}

	category, err := parseCategory(c.Category)
	if err != nil {
		return err
	}

	todos := make([]models.Todo, 0, len(c.Todos))
	for _, title := range c.Todos {
		todos = append(todos, models.Todo{Title: title})
	}

	habit, err := repo.AddHabit(c.Title, category, todos)
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s, %d todos)\n", habit.Title, habit.Category, len(habit.Todos))
	return nil
}

type HabitListCmd struct {
	Category string `short:"c" help:"Only show habits in this category."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	repo, err := ctx.Repo()
	if err != nil {
		return err
	}

	habitList := repo.Habits()
	if c.Category != "" {
		category, err := parseCategory(c.Category)
		if err != nil {
			return err
		}
		filtered := habitList[:0:0]
		for _, h := range habitList {
			if h.Category == category {
				filtered = append(filtered, h)
			}
		}
		habitList = filtered
	}

	if len(habitList) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, h := range habitList {
		progress := repo.TodayProgress(h.ID)
		streak := repo.Streak(h.ID)

		marker := "○"
		if repo.IsFullyDoneToday(h.ID) {
			marker = doneStyle.Render("✓")
		}
		line := fmt.Sprintf("%s %-24s %3d%% (%d/%d)", marker, h.Title, progress.Pct, progress.Completed, progress.Total)
		if streak > 0 {
			line += "  " + streakStyle.Render(fmt.Sprintf("%dd streak", streak))
		}
		line += "  " + faintStyle.Render(string(h.Category))
		fmt.Println(line)
	}
	return nil
}

type HabitEditCmd struct {
	Habit    string `arg:"" help:"Habit title or id."`
	Title    string `help:"New title."`
	Category string `short:"c" help:"New category."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	repo, err := ctx.Repo()
	if err != nil {
		return err
	}

	habit, err := findHabit(repo, c.Habit)
	if err != nil {
		return err
	}

	var upd habits.HabitUpdate
	if c.Title != "" {
		upd.Title = &c.Title
	}
	if c.Category != "" {
		category, err := parseCategory(c.Category)
		if err != nil {
			return err
		}
		upd.Category = &category
	}
	if upd.Title == nil && upd.Category == nil {
		return fmt.Errorf("nothing to change (use --title or --category)")
	}

	if err := repo.UpdateHabit(habit.ID, upd); err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s\n", habit.Title)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit title or id."`
	Yes   bool   `short:"y" help:"Skip confirmation."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	repo, err := ctx.Repo()
	if err != nil {
		return err
	}

	habit, err := findHabit(repo, c.Habit)
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Printf("Delete habit %q and all of its completion history? [y/N] ", habit.Title)
		var answer string
		fmt.Scanln(&answer)
		if !strings.HasPrefix(strings.ToLower(answer), "y") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := repo.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", habit.Title)
	return nil
}
