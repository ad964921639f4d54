package habits

import (
	"errors"
	"testing"
	"time"

	"github.com/kmahoney/tend/internal/apperr"
	"github.com/kmahoney/tend/internal/models"
)

// memStore is an in-memory provider for tests. It records saves so tests can
// assert persistence behavior, and can be made to fail.
type memStore struct {
	state     models.State
	saveCount int
	failSave  bool
}

func (s *memStore) Init() error { return nil }

func (s *memStore) Load() (models.State, error) { return s.state, nil }

func (s *memStore) Save(state models.State) error {
	if s.failSave {
		return errors.New("disk full")
	}
	s.state = state
	s.saveCount++
	return nil
}

func (s *memStore) Close() error { return nil }

func (s *memStore) Path() string { return "mem" }

func newTestRepo(t *testing.T) (*Repository, *memStore) {
	t.Helper()
	store := &memStore{state: models.NewState()}
	repo, err := NewRepository(store)
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}
	return repo, store
}

func TestAddHabit_ValidatesTitleAndCategory(t *testing.T) {
	repo, _ := newTestRepo(t)

	if _, err := repo.AddHabit("   ", models.CategoryHealth, nil); !apperr.IsValidation(err) {
		t.Errorf("expected validation error for blank title, got %v", err)
	}
	if _, err := repo.AddHabit("Read", "bogus", nil); !apperr.IsValidation(err) {
		t.Errorf("expected validation error for unknown category, got %v", err)
	}

	habit, err := repo.AddHabit("  Read daily  ", models.CategoryStudy, []models.Todo{{Title: "One chapter"}})
	if err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if habit.Title != "Read daily" {
		t.Errorf("expected trimmed title, got %q", habit.Title)
	}
	if habit.ID == "" || habit.Todos[0].ID == "" {
		t.Error("expected generated ids for habit and todo")
	}
	if len(repo.Habits()) != 1 {
		t.Errorf("expected 1 habit, got %d", len(repo.Habits()))
	}
}

func TestUpdateHabit_PartialMerge(t *testing.T) {
	repo, _ := newTestRepo(t)
	habit, _ := repo.AddHabit("Run", models.CategorySports, nil)

	title := "Morning run"
	if err := repo.UpdateHabit(habit.ID, HabitUpdate{Title: &title}); err != nil {
		t.Fatalf("UpdateHabit failed: %v", err)
	}
	got, err := repo.Habit(habit.ID)
	if err != nil {
		t.Fatalf("Habit failed: %v", err)
	}
	if got.Title != "Morning run" || got.Category != models.CategorySports {
		t.Errorf("expected only the title to change, got %+v", got)
	}

	if err := repo.UpdateHabit("missing", HabitUpdate{Title: &title}); !apperr.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestUpdateHabit_RejectedUpdateLeavesHabitUntouched(t *testing.T) {
	repo, store := newTestRepo(t)
	habit, _ := repo.AddHabit("Run", models.CategorySports, nil)
	saves := store.saveCount

	// A valid title paired with an invalid category must reject the whole
	// update, not apply half of it.
	title := "Morning run"
	bogus := models.Category("bogus")
	if err := repo.UpdateHabit(habit.ID, HabitUpdate{Title: &title, Category: &bogus}); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	got, err := repo.Habit(habit.ID)
	if err != nil {
		t.Fatalf("Habit failed: %v", err)
	}
	if got.Title != "Run" {
		t.Errorf("rejected update changed title to %q, want %q", got.Title, "Run")
	}
	if got.Category != models.CategorySports {
		t.Errorf("rejected update changed category to %q", got.Category)
	}
	if store.saveCount != saves {
		t.Errorf("rejected update triggered %d save(s)", store.saveCount-saves)
	}
}

func TestDeleteHabit_RemovesCompletionSubtree(t *testing.T) {
	repo, _ := newTestRepo(t)
	habit, _ := repo.AddHabit("Run", models.CategorySports, []models.Todo{{Title: "Stretch"}})
	todoID := habit.Todos[0].ID

	if _, err := repo.ToggleCompletion(habit.ID, todoID, "2024-01-05"); err != nil {
		t.Fatalf("ToggleCompletion failed: %v", err)
	}
	if err := repo.DeleteHabit(habit.ID); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}

	if len(repo.Habits()) != 0 {
		t.Errorf("expected empty habit list, got %d", len(repo.Habits()))
	}
	if _, ok := repo.Completions()[habit.ID]; ok {
		t.Error("expected completion subtree to be removed with the habit")
	}
	if err := repo.DeleteHabit(habit.ID); !apperr.IsNotFound(err) {
		t.Errorf("expected not-found on double delete, got %v", err)
	}
}

func TestToggleCompletion_TwiceRestoresState(t *testing.T) {
	repo, _ := newTestRepo(t)
	habit, _ := repo.AddHabit("Run", models.CategorySports, []models.Todo{{Title: "Stretch"}})
	todoID := habit.Todos[0].ID

	done, err := repo.ToggleCompletion(habit.ID, todoID, "2024-01-05")
	if err != nil {
		t.Fatalf("ToggleCompletion failed: %v", err)
	}
	if !done {
		t.Error("expected first toggle to mark done")
	}
	done, err = repo.ToggleCompletion(habit.ID, todoID, "2024-01-05")
	if err != nil {
		t.Fatalf("second ToggleCompletion failed: %v", err)
	}
	if done {
		t.Error("expected second toggle to unmark")
	}
	if repo.Completions().IsDone(habit.ID, "2024-01-05", todoID) {
		t.Error("expected log to read not-done after double toggle")
	}
}

func TestToggleCompletion_Validation(t *testing.T) {
	repo, _ := newTestRepo(t)
	habit, _ := repo.AddHabit("Run", models.CategorySports, []models.Todo{{Title: "Stretch"}})
	todoID := habit.Todos[0].ID

	if _, err := repo.ToggleCompletion(habit.ID, todoID, "01/05/2024"); !apperr.IsValidation(err) {
		t.Errorf("expected validation error for bad date, got %v", err)
	}
	if _, err := repo.ToggleCompletion(habit.ID, "missing", "2024-01-05"); !apperr.IsNotFound(err) {
		t.Errorf("expected not-found for unknown todo, got %v", err)
	}
	if _, err := repo.ToggleCompletion("missing", todoID, "2024-01-05"); !apperr.IsNotFound(err) {
		t.Errorf("expected not-found for unknown habit, got %v", err)
	}
}

func TestArchiveTodo_KeepsLogEntries(t *testing.T) {
	repo, _ := newTestRepo(t)
	habit, _ := repo.AddHabit("Run", models.CategorySports, []models.Todo{{Title: "Stretch"}})
	todoID := habit.Todos[0].ID
	if _, err := repo.ToggleCompletion(habit.ID, todoID, "2024-01-05"); err != nil {
		t.Fatalf("ToggleCompletion failed: %v", err)
	}

	if err := repo.ArchiveTodo(habit.ID, todoID); err != nil {
		t.Fatalf("ArchiveTodo failed: %v", err)
	}

	got, _ := repo.Habit(habit.ID)
	if len(got.ActiveTodos()) != 0 {
		t.Error("expected archived todo to leave active list")
	}
	if len(got.Todos) != 1 {
		t.Error("expected archived todo to stay in storage")
	}
	if !repo.Completions().IsDone(habit.ID, "2024-01-05", todoID) {
		t.Error("expected archive to retain completion entries")
	}
}

func TestDeleteTodo_ErasesLogEntries(t *testing.T) {
	repo, _ := newTestRepo(t)
	habit, _ := repo.AddHabit("Run", models.CategorySports, []models.Todo{{Title: "Stretch"}, {Title: "Jog"}})
	stretch, jog := habit.Todos[0].ID, habit.Todos[1].ID
	_, _ = repo.ToggleCompletion(habit.ID, stretch, "2024-01-05")
	_, _ = repo.ToggleCompletion(habit.ID, jog, "2024-01-05")

	if err := repo.DeleteTodo(habit.ID, stretch); err != nil {
		t.Fatalf("DeleteTodo failed: %v", err)
	}

	got, _ := repo.Habit(habit.ID)
	if len(got.Todos) != 1 || got.Todos[0].ID != jog {
		t.Errorf("expected only the jog todo to survive, got %+v", got.Todos)
	}
	if repo.Completions().IsDone(habit.ID, "2024-01-05", stretch) {
		t.Error("expected deleted todo's completion entries to be erased")
	}
	if !repo.Completions().IsDone(habit.ID, "2024-01-05", jog) {
		t.Error("expected sibling todo's entries to survive")
	}
}

func TestPersist_SkipsRedundantSaves(t *testing.T) {
	repo, store := newTestRepo(t)
	habit, _ := repo.AddHabit("Run", models.CategorySports, nil)
	saves := store.saveCount

	// An update that changes nothing should not hit the store again.
	if err := repo.UpdateHabit(habit.ID, HabitUpdate{}); err != nil {
		t.Fatalf("UpdateHabit failed: %v", err)
	}
	if store.saveCount != saves {
		t.Errorf("expected no save for a no-op mutation, got %d extra", store.saveCount-saves)
	}
}

func TestPersist_FailedSaveKeepsMemoryState(t *testing.T) {
	repo, store := newTestRepo(t)
	store.failSave = true

	_, err := repo.AddHabit("Run", models.CategorySports, nil)
	if !apperr.IsPersistence(err) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if len(repo.Habits()) != 1 {
		t.Error("expected in-memory mutation to be kept despite failed save")
	}
}

func TestReplaceHabits_NormalizesNil(t *testing.T) {
	repo, _ := newTestRepo(t)
	if err := repo.ReplaceHabits(nil, nil); err != nil {
		t.Fatalf("ReplaceHabits failed: %v", err)
	}
	if repo.Habits() == nil || repo.Completions() == nil {
		t.Error("expected nil inputs to become empty collections")
	}
}

func TestNewRepository_NormalizesLoadedState(t *testing.T) {
	store := &memStore{state: models.State{Habits: []models.Habit{{
		ID:        "h1",
		Title:     "Run",
		Category:  models.CategorySports,
		CreatedAt: time.Now(),
	}}}}
	repo, err := NewRepository(store)
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}
	if repo.Completions() == nil {
		t.Error("expected nil completion log to be initialized on load")
	}
}
