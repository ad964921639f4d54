package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kmahoney/tend/internal/dates"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.state {
	case StateAddHabit, StateAddTodo:
		return docStyle.Render(m.form.View())
	case StateConfirmDelete:
		body = m.confirmDeleteView()
	case StateTodos:
		body = m.todosView()
	default:
		body = m.habitsView()
	}

	sections := []string{body}
	if m.lastError != "" {
		sections = append(sections, errorStyle.Render(m.lastError))
	}
	sections = append(sections, m.help.View(m.keys))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) habitsView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Habits"))
	b.WriteString("\n\n")

	habitList := m.repo.Habits()
	if len(habitList) == 0 {
		b.WriteString(faintStyle.Render("No habits yet. Press 'a' to add one."))
		b.WriteString("\n")
		return b.String()
	}

	for i, h := range habitList {
		progress := m.repo.TodayProgress(h.ID)
		line := fmt.Sprintf("%-24s %d/%d", h.Title, progress.Completed, progress.Total)
		if streak := m.repo.Streak(h.ID); streak > 0 {
			line += streakStyle.Render(fmt.Sprintf("  %dd", streak))
		}
		if m.repo.IsFullyDoneToday(h.ID) {
			line += doneStyle.Render(" ✓")
		}
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) todosView() string {
	habit, ok := m.selectedHabit()
	if !ok {
		return faintStyle.Render("Habit no longer exists.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(habit.Title))
	b.WriteString(faintStyle.Render("  [" + string(habit.Category) + "]"))
	b.WriteString("\n\n")

	active := habit.ActiveTodos()
	if len(active) == 0 {
		b.WriteString(faintStyle.Render("No todos. Press 'a' to add one."))
		b.WriteString("\n")
		return b.String()
	}

	today := dates.Today()
	for i, todo := range active {
		mark := "·"
		if m.repo.Completions().IsDone(habit.ID, today, todo.ID) {
			mark = doneStyle.Render("✓")
		}
		line := fmt.Sprintf("%s %s", mark, todo.Title)
		if todo.Note != "" {
			line += faintStyle.Render("  (" + todo.Note + ")")
		}
		if i == m.todoIdx {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) confirmDeleteView() string {
	habit, ok := m.selectedHabit()
	if !ok {
		return faintStyle.Render("Habit no longer exists.")
	}
	return fmt.Sprintf("Delete habit %q and all of its history? (y/n)", habit.Title)
}
