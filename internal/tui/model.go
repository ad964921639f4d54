package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/kmahoney/tend/internal/habits"
	"github.com/kmahoney/tend/internal/models"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateTodos
	StateAddHabit
	StateAddTodo
	StateConfirmDelete
)

type HabitFormModel struct {
	Title    string
	Category string
}

type TodoFormModel struct {
	Title string
	Note  string
}

type Model struct {
	repo *habits.Repository
	keys KeyMap
	help help.Model

	state     SessionState
	cursor    int
	todoIdx   int
	selected  string // habit id when drilled in
	width     int
	height    int
	quitting  bool
	lastError string

	form      *huh.Form
	habitForm *HabitFormModel
	todoForm  *TodoFormModel
}

func New(repo *habits.Repository) Model {
	return Model{
		repo: repo,
		keys: DefaultKeyMap(),
		help: help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// selectedHabit resolves the habit under the cursor (habit list) or the
// drilled-in habit (todo list).
func (m Model) selectedHabit() (models.Habit, bool) {
	habitList := m.repo.Habits()
	if m.state == StateHabits || m.state == StateConfirmDelete {
		if m.cursor < 0 || m.cursor >= len(habitList) {
			return models.Habit{}, false
		}
		return habitList[m.cursor], true
	}
	for _, h := range habitList {
		if h.ID == m.selected {
			return h, true
		}
	}
	return models.Habit{}, false
}

func newHabitForm(data *HabitFormModel) *huh.Form {
	var options []huh.Option[string]
	for _, c := range models.Categories() {
		options = append(options, huh.NewOption(string(c), string(c)))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit title").
				Value(&data.Title),
			huh.NewSelect[string]().
				Title("Category").
				Options(options...).
				Value(&data.Category),
		),
	)
}

func newTodoForm(data *TodoFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Todo title").
				Value(&data.Title),
			huh.NewInput().
				Title("Note (optional)").
				Value(&data.Note),
		),
	)
}
