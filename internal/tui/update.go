package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/kmahoney/tend/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	switch m.state {
	case StateAddHabit, StateAddTodo:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.lastError = ""
	habitList := m.repo.Habits()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.state == StateTodos {
			if m.todoIdx > 0 {
				m.todoIdx--
			}
		} else if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.state == StateTodos {
			if habit, ok := m.selectedHabit(); ok && m.todoIdx < len(habit.ActiveTodos())-1 {
				m.todoIdx++
			}
		} else if m.cursor < len(habitList)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Enter):
		if m.state == StateHabits && m.cursor < len(habitList) {
			m.selected = habitList[m.cursor].ID
			m.todoIdx = 0
			m.state = StateTodos
		}

	case key.Matches(msg, m.keys.Back):
		if m.state == StateTodos {
			m.state = StateHabits
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.state == StateTodos {
			m.toggleSelected()
		}

	case key.Matches(msg, m.keys.Add):
		if m.state == StateHabits {
			m.habitForm = &HabitFormModel{Category: string(models.CategoryCustom)}
			m.form = newHabitForm(m.habitForm)
			m.state = StateAddHabit
			return m, m.form.Init()
		}
		m.todoForm = &TodoFormModel{}
		m.form = newTodoForm(m.todoForm)
		m.state = StateAddTodo
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Archive):
		if m.state == StateTodos {
			m.archiveSelected()
		}

	case key.Matches(msg, m.keys.Delete):
		if m.state == StateHabits && m.cursor < len(habitList) {
			m.state = StateConfirmDelete
		}
	}

	return m, nil
}

func (m *Model) toggleSelected() {
	habit, ok := m.selectedHabit()
	if !ok {
		return
	}
	active := habit.ActiveTodos()
	if m.todoIdx >= len(active) {
		return
	}
	if _, err := m.repo.ToggleCompletion(habit.ID, active[m.todoIdx].ID, ""); err != nil {
		m.lastError = err.Error()
	}
}

func (m *Model) archiveSelected() {
	habit, ok := m.selectedHabit()
	if !ok {
		return
	}
	active := habit.ActiveTodos()
	if m.todoIdx >= len(active) {
		return
	}
	if err := m.repo.ArchiveTodo(habit.ID, active[m.todoIdx].ID); err != nil {
		m.lastError = err.Error()
	}
	if m.todoIdx > 0 {
		m.todoIdx--
	}
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.formReturnState()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitForm()
		m.state = m.formReturnState()
	case huh.StateAborted:
		m.state = m.formReturnState()
	}
	return m, cmd
}

func (m Model) formReturnState() SessionState {
	if m.state == StateAddHabit {
		return StateHabits
	}
	return StateTodos
}

func (m *Model) submitForm() {
	switch m.state {
	case StateAddHabit:
		_, err := m.repo.AddHabit(m.habitForm.Title, models.Category(m.habitForm.Category), nil)
		if err != nil {
			m.lastError = err.Error()
		}
		m.habitForm = nil
	case StateAddTodo:
		if habit, ok := m.selectedHabit(); ok {
			if _, err := m.repo.AddTodo(habit.ID, m.todoForm.Title, m.todoForm.Note); err != nil {
				m.lastError = err.Error()
			}
		}
		m.todoForm = nil
	}
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		if habit, ok := m.selectedHabit(); ok {
			if err := m.repo.DeleteHabit(habit.ID); err != nil {
				m.lastError = err.Error()
			}
			if m.cursor > 0 {
				m.cursor--
			}
		}
		m.state = StateHabits
	case "n", "N", "esc", "q":
		m.state = StateHabits
	}
	return m, nil
}
