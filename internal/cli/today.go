package cli

import (
	"fmt"

	"github.com/kmahoney/tend/internal/dates"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	repo, err := ctx.Repo()
	if err != nil {
		return err
	}

	habitList := repo.Habits()
	if len(habitList) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	today := dates.Today()
	fmt.Printf("Habits for %s:\n\n", today)

	fullyDone := 0
	for _, habit := range habitList {
		progress := repo.TodayProgress(habit.ID)
		marker := "[ ]"
		if repo.IsFullyDoneToday(habit.ID) {
			marker = "[x]"
			fullyDone++
		}
		fmt.Printf("%s %s (%d/%d)\n", marker, habit.Title, progress.Completed, progress.Total)

		for _, todo := range habit.ActiveTodos() {
			check := "·"
			if repo.Completions().IsDone(habit.ID, today, todo.ID) {
				check = "✓"
			}
			fmt.Printf("      %s %s\n", check, todo.Title)
		}
	}

	fmt.Printf("\nFully done: %d/%d\n", fullyDone, len(habitList))
	return nil
}
