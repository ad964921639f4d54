package cli

import (
	"fmt"
	"strings"

	"github.com/kmahoney/tend/internal/habits"
	"github.com/kmahoney/tend/internal/models"
	"github.com/kmahoney/tend/internal/storage"
)

type Context struct {
	Store storage.Provider

	repo *habits.Repository
}

// Repo loads the repository on first use so every command shares one loaded
// state.
func (c *Context) Repo() (*habits.Repository, error) {
	if c.repo == nil {
		repo, err := habits.NewRepository(c.Store)
		if err != nil {
			return nil, err
		}
		c.repo = repo
	}
	return c.repo, nil
}

func parseCategory(s string) (models.Category, error) {
	cat := models.Category(strings.ToLower(strings.TrimSpace(s)))
	if !cat.IsValid() {
		var names []string
		for _, c := range models.Categories() {
			names = append(names, string(c))
		}
		return "", fmt.Errorf("invalid category %q (expected one of %s)", s, strings.Join(names, "|"))
	}
	return cat, nil
}

// findHabit resolves a habit by title or id prefix so commands can take the
// human-friendly name.
func findHabit(repo *habits.Repository, ref string) (models.Habit, error) {
	for _, h := range repo.Habits() {
		if h.Title == ref || h.ID == ref {
			return h, nil
		}
	}
	for _, h := range repo.Habits() {
		if strings.HasPrefix(h.ID, ref) {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q not found", ref)
}

// findTodo resolves a todo within a habit by title or id prefix.
func findTodo(habit models.Habit, ref string) (models.Todo, error) {
	for _, t := range habit.Todos {
		if t.Title == ref || t.ID == ref {
			return t, nil
		}
	}
	for _, t := range habit.Todos {
		if strings.HasPrefix(t.ID, ref) {
			return t, nil
		}
	}
	return models.Todo{}, fmt.Errorf("todo %q not found on habit %q", ref, habit.Title)
}
