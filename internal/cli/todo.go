package cli

import (
	"fmt"

	"github.com/kmahoney/tend/internal/habits"
)

type TodoCmd struct {
	Add     TodoAddCmd     `cmd:"" help:"Add a todo to a habit."`
	Edit    TodoEditCmd    `cmd:"" help:"Edit a todo."`
	Archive TodoArchiveCmd `cmd:"" help:"Archive a todo (history is kept)."`
	Delete  TodoDeleteCmd  `cmd:"" help:"Delete a todo and its completion entries."`
}

type TodoAddCmd struct {
	Habit string `arg:"" help:"Habit title or id."`
	Title string `arg:"" help:"Todo title."`
	Note  string `short:"n" help:"Optional note."`
}

func (c *TodoAddCmd) Run(ctx *Context) error {
	repo, err := ctx.Repo()
	if err != nil {
		return err
	}

	habit, err := findHabit(repo, c.Habit)
	if err != nil {
		return err
	}

	todo, err := repo.AddTodo(habit.ID, c.Title, c.Note)
	if err != nil {
		return err
	}

	fmt.Printf("Added todo %q to habit %q\n", todo.Title, habit.Title)
	return nil
}

type TodoEditCmd struct {
	Habit     string `arg:"" help:"Habit title or id."`
	Todo      string `arg:"" help:"Todo title or id."`
	Title     string `help:"New title."`
	Note      string `short:"n" help:"New note."`
	Unarchive bool   `help:"Restore an archived todo."`
}

func (c *TodoEditCmd) Run(ctx *Context) error {
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

	var upd habits.TodoUpdate
	if c.Title != "" {
		upd.Title = &c.Title
	}
	if c.Note != "" {
		upd.Note = &c.Note
	}
	if c.Unarchive {
		archived := false
		upd.Archived = &archived
	}
	if upd.Title == nil && upd.Note == nil && upd.Archived == nil {
		return fmt.Errorf("nothing to change (use --title, --note, or --unarchive)")
	}

	if err := repo.UpdateTodo(habit.ID, todo.ID, upd); err != nil {
		return err
	}

	fmt.Printf("Updated todo %q\n", todo.Title)
	return nil
}

type TodoArchiveCmd struct {
	Habit string `arg:"" help:"Habit title or id."`
	Todo  string `arg:"" help:"Todo title or id."`
}

func (c *TodoArchiveCmd) Run(ctx *Context) error {
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

	if err := repo.ArchiveTodo(habit.ID, todo.ID); err != nil {
		return err
	}

	fmt.Printf("Archived todo %q (completion history kept)\n", todo.Title)
	return nil
}

type TodoDeleteCmd struct {
	Habit string `arg:"" help:"Habit title or id."`
	Todo  string `arg:"" help:"Todo title or id."`
}

func (c *TodoDeleteCmd) Run(ctx *Context) error {
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

	if err := repo.DeleteTodo(habit.ID, todo.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted todo %q and its completion entries\n", todo.Title)
	return nil
}
