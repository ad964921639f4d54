package cli

import (
	"fmt"

	"github.com/kmahoney/tend/internal/dates"
)

type DoneCmd struct {
	Habit string `arg:"" help:"Habit title or id."`
	Todo  string `arg:"" help:"Todo title or id."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *DoneCmd) Run(ctx *Context) error {
	repo, err := ctx.Repo()
	if err != nil {
		return err
	}

	habit, err := findHabit(repo, c.Habit)
	if err != nil {
		return err
	}
	todo, err := findTodo(habit, c.Todo)
	if err != nil {
		return err
	}

	done, err := repo.ToggleCompletion(habit.ID, todo.ID, c.Date)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = dates.Today()
	}
	if done {
		fmt.Printf("Marked %q done for %s\n", todo.Title, day)
	} else {
		fmt.Printf("Unmarked %q for %s\n", todo.Title, day)
	}

	if repo.IsFullyDoneToday(habit.ID) && day == dates.Today() {
		fmt.Printf("Habit %q fully done today. Streak: %d\n", habit.Title, repo.Streak(habit.ID))
	}
	return nil
}
