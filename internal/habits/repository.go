package habits

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/kmahoney/tend/internal/apperr"
	"github.com/kmahoney/tend/internal/dates"
	"github.com/kmahoney/tend/internal/logger"
	"github.com/kmahoney/tend/internal/models"
	"github.com/kmahoney/tend/internal/storage"
)

// Repository owns the habit list and the completion log. It is an explicit,
// constructible object: state is loaded from the injected provider once, every
// mutation updates memory first and then triggers a best-effort save. A failed
// save surfaces as a persistence error without rolling the mutation back.
type Repository struct {
	store     storage.Provider
	state     models.State
	lastSaved uint64
}

// NewRepository loads state from the provider and returns a ready repository.
func NewRepository(store storage.Provider) (*Repository, error) {
	state, err := store.Load()
	if err != nil {
		return nil, err
	}
	state.Normalize()
	repo := &Repository{store: store, state: state}
	repo.lastSaved = repo.hash()
	return repo, nil
}

// Habits returns the habit list. Callers treat it as a read-only snapshot.
func (r *Repository) Habits() []models.Habit {
	return r.state.Habits
}

// Completions returns the completion log. Callers treat it as read-only.
func (r *Repository) Completions() models.CompletionLog {
	return r.state.Completions
}

// State returns the full persisted state.
func (r *Repository) State() models.State {
	return r.state
}

// Habit looks up a habit by id.
func (r *Repository) Habit(habitID string) (models.Habit, error) {
	h, ok := r.state.Habit(habitID)
	if !ok {
		return models.Habit{}, apperr.NotFoundf("habit %s", habitID)
	}
	return *h, nil
}

// AddHabit creates a habit with a fresh id and creation timestamp. Todos
// passed in are given fresh ids as well.
func (r *Repository) AddHabit(title string, category models.Category, todos []models.Todo) (models.Habit, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Habit{}, apperr.Validationf("habit title cannot be empty")
	}
	if !category.IsValid() {
		return models.Habit{}, apperr.Validationf("invalid category %q", category)
	}

	habit := models.Habit{
		ID:        uuid.New().String(),
		Title:     title,
		Category:  category,
		Todos:     make([]models.Todo, 0, len(todos)),
		CreatedAt: time.Now(),
	}
	for _, todo := range todos {
		todo.Title = strings.TrimSpace(todo.Title)
		if todo.Title == "" {
			return models.Habit{}, apperr.Validationf("todo title cannot be empty")
		}
		todo.ID = uuid.New().String()
		habit.Todos = append(habit.Todos, todo)
	}

	r.state.Habits = append(r.state.Habits, habit)
	return habit, r.persist()
}

// HabitUpdate is a partial habit mutation; nil fields are left unchanged.
type HabitUpdate struct {
	Title    *string
	Category *models.Category
}

// UpdateHabit merges fields into the matching habit. Every field is
// validated before any of them is applied, so a rejected update leaves the
// habit exactly as it was.
func (r *Repository) UpdateHabit(habitID string, upd HabitUpdate) error {
	habit, ok := r.state.Habit(habitID)
	if !ok {
		return apperr.NotFoundf("habit %s", habitID)
	}
	var title string
	if upd.Title != nil {
		title = strings.TrimSpace(*upd.Title)
		if title == "" {
			return apperr.Validationf("habit title cannot be empty")
		}
	}
	if upd.Category != nil && !upd.Category.IsValid() {
		return apperr.Validationf("invalid category %q", *upd.Category)
	}
	if upd.Title != nil {
		habit.Title = title
	}
	if upd.Category != nil {
		habit.Category = *upd.Category
	}
	return r.persist()
}

// DeleteHabit removes the habit and its entire completion-log subtree.
func (r *Repository) DeleteHabit(habitID string) error {
	idx := -1
	for i := range r.state.Habits {
		if r.state.Habits[i].ID == habitID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFoundf("habit %s", habitID)
	}
	r.state.Habits = append(r.state.Habits[:idx], r.state.Habits[idx+1:]...)
	r.state.Completions.RemoveHabit(habitID)
	return r.persist()
}

// AddTodo appends a todo with a fresh id to the habit's checklist.
func (r *Repository) AddTodo(habitID, title, note string) (models.Todo, error) {
	habit, ok := r.state.Habit(habitID)
	if !ok {
		return models.Todo{}, apperr.NotFoundf("habit %s", habitID)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Todo{}, apperr.Validationf("todo title cannot be empty")
	}
	todo := models.Todo{
		ID:    uuid.New().String(),
		Title: title,
		Note:  note,
	}
	habit.Todos = append(habit.Todos, todo)
	return todo, r.persist()
}

// TodoUpdate is a partial todo mutation; nil fields are left unchanged.
type TodoUpdate struct {
	Title    *string
	Note     *string
	Archived *bool
}

// UpdateTodo merges fields into the matching todo.
func (r *Repository) UpdateTodo(habitID, todoID string, upd TodoUpdate) error {
	todo, err := r.findTodo(habitID, todoID)
	if err != nil {
		return err
	}
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return apperr.Validationf("todo title cannot be empty")
		}
		todo.Title = title
	}
	if upd.Note != nil {
		todo.Note = *upd.Note
	}
	if upd.Archived != nil {
		todo.Archived = *upd.Archived
	}
	return r.persist()
}

// ArchiveTodo soft-deletes a todo: it disappears from progress and streak
// computation but its log entries are retained.
func (r *Repository) ArchiveTodo(habitID, todoID string) error {
	archived := true
	return r.UpdateTodo(habitID, todoID, TodoUpdate{Archived: &archived})
}

// DeleteTodo removes the todo and erases its completion entries across all
// days, unlike archiving.
func (r *Repository) DeleteTodo(habitID, todoID string) error {
	habit, ok := r.state.Habit(habitID)
	if !ok {
		return apperr.NotFoundf("habit %s", habitID)
	}
	idx := -1
	for i := range habit.Todos {
		if habit.Todos[i].ID == todoID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFoundf("todo %s", todoID)
	}
	habit.Todos = append(habit.Todos[:idx], habit.Todos[idx+1:]...)
	r.state.Completions.RemoveTodo(habitID, todoID)
	return r.persist()
}

// ToggleCompletion flips the completion flag for a todo on the given day
// (today when day is empty) and returns the new value. Toggling twice
// restores the prior state exactly.
func (r *Repository) ToggleCompletion(habitID, todoID, day string) (bool, error) {
	if _, err := r.findTodo(habitID, todoID); err != nil {
		return false, err
	}
	if day == "" {
		day = dates.Today()
	} else if _, err := dates.ParseDay(day); err != nil {
		return false, apperr.Validationf("%v", err)
	}
	done := r.state.Completions.Toggle(habitID, day, todoID)
	return done, r.persist()
}

// SetProfile stores the user profile.
func (r *Repository) SetProfile(profile models.Profile) error {
	r.state.Profile = &profile
	return r.persist()
}

// SetTheme stores the theme preference.
func (r *Repository) SetTheme(dark bool) error {
	r.state.Theme = &models.Theme{Dark: dark}
	return r.persist()
}

// SetStats caches a computed stats snapshot for export.
func (r *Repository) SetStats(stats models.UserStats) error {
	r.state.Stats = &stats
	return r.persist()
}

// ReplaceHabits swaps in an imported habit list and completion log.
func (r *Repository) ReplaceHabits(habits []models.Habit, completions models.CompletionLog) error {
	if habits == nil {
		habits = []models.Habit{}
	}
	if completions == nil {
		completions = make(models.CompletionLog)
	}
	r.state.Habits = habits
	r.state.Completions = completions
	return r.persist()
}

func (r *Repository) findTodo(habitID, todoID string) (*models.Todo, error) {
	habit, ok := r.state.Habit(habitID)
	if !ok {
		return nil, apperr.NotFoundf("habit %s", habitID)
	}
	for i := range habit.Todos {
		if habit.Todos[i].ID == todoID {
			return &habit.Todos[i], nil
		}
	}
	return nil, apperr.NotFoundf("todo %s", todoID)
}

func (r *Repository) hash() uint64 {
	h, err := hashstructure.Hash(r.state, hashstructure.FormatV2, nil)
	if err != nil {
		// Hashing only dedupes saves; fall back to always saving.
		return 0
	}
	return h
}

// persist writes the in-memory state through the provider. The in-memory
// model stays authoritative either way; a failed save is reported as a
// recoverable persistence error.
func (r *Repository) persist() error {
	h := r.hash()
	if h != 0 && h == r.lastSaved {
		return nil
	}
	if err := r.store.Save(r.state); err != nil {
		logger.Error("save failed", "path", r.store.Path(), "error", err)
		return apperr.Persistencef(err)
	}
	r.lastSaved = h
	return nil
}
