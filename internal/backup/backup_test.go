package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kmahoney/tend/internal/constants"
	"github.com/kmahoney/tend/internal/habits"
	"github.com/kmahoney/tend/internal/models"
	"github.com/kmahoney/tend/internal/storage"
)

func newTestRepo(t *testing.T) (*habits.Repository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tend.json")
	store := storage.NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	repo, err := habits.NewRepository(store)
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}
	return repo, path
}

func TestExportImport_RoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	habit, err := repo.AddHabit("Run", models.CategorySports, []models.Todo{{Title: "Stretch"}})
	if err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if _, err := repo.ToggleCompletion(habit.ID, habit.Todos[0].ID, "2024-01-05"); err != nil {
		t.Fatalf("ToggleCompletion failed: %v", err)
	}
	if err := repo.SetProfile(models.Profile{Name: "Kim"}); err != nil {
		t.Fatalf("SetProfile failed: %v", err)
	}

	data, err := Export(repo.State())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	target, _ := newTestRepo(t)
	if err := Import(target, data); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if len(target.Habits()) != 1 || target.Habits()[0].Title != "Run" {
		t.Errorf("expected imported habit, got %+v", target.Habits())
	}
	if !target.Completions().IsDone(habit.ID, "2024-01-05", habit.Todos[0].ID) {
		t.Error("expected imported completion entry")
	}
	if target.State().Profile == nil || target.State().Profile.Name != "Kim" {
		t.Error("expected imported profile")
	}
}

func TestExport_IncludesDate(t *testing.T) {
	data, err := Export(models.NewState())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.ExportDate.IsZero() {
		t.Error("expected export date to be set")
	}
}

func TestImport_PartialPayloadLeavesRestUntouched(t *testing.T) {
	repo, _ := newTestRepo(t)
	if _, err := repo.AddHabit("Run", models.CategorySports, nil); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if err := repo.SetProfile(models.Profile{Name: "Kim"}); err != nil {
		t.Fatalf("SetProfile failed: %v", err)
	}

	// Theme-only payload must not disturb habits or profile.
	if err := Import(repo, []byte(`{"theme":{"dark":true}}`)); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if len(repo.Habits()) != 1 {
		t.Errorf("expected habits untouched, got %d", len(repo.Habits()))
	}
	if repo.State().Profile == nil || repo.State().Profile.Name != "Kim" {
		t.Error("expected profile untouched")
	}
	if repo.State().Theme == nil || !repo.State().Theme.Dark {
		t.Error("expected theme applied")
	}
}

func TestImport_RejectsMalformedData(t *testing.T) {
	repo, _ := newTestRepo(t)
	if err := Import(repo, []byte("{not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestManager_CreateAndList(t *testing.T) {
	_, path := newTestRepo(t)
	mgr := NewManager(path)

	created, err := mgr.Create(models.NewState())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := os.Stat(created); err != nil {
		t.Fatalf("expected backup file on disk: %v", err)
	}

	list, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(list))
	}
	if list[0].Path != created {
		t.Errorf("expected listed path %s, got %s", created, list[0].Path)
	}
}

func TestManager_CollisionGetsUniqueName(t *testing.T) {
	_, path := newTestRepo(t)
	mgr := NewManager(path)

	first, err := mgr.Create(models.NewState())
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	second, err := mgr.Create(models.NewState())
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	if first == second {
		t.Error("expected distinct filenames for back-to-back backups")
	}
}

func TestManager_RotationDropsOldest(t *testing.T) {
	dir := t.TempDir()
	mgr := NewManager(filepath.Join(dir, "tend.json"))
	backupDir := mgr.Dir()
	if err := os.MkdirAll(backupDir, 0700); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	// Seed more dated snapshots than the retention limit.
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)
	for i := 0; i < constants.MaxBackups+3; i++ {
		name := constants.BackupFilePrefix + base.AddDate(0, 0, i).Format("20060102-1504") + constants.BackupFileSuffix
		if err := os.WriteFile(filepath.Join(backupDir, name), []byte("{}"), 0600); err != nil {
			t.Fatalf("seed write failed: %v", err)
		}
	}

	if _, err := mgr.Create(models.NewState()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	list, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != constants.MaxBackups {
		t.Errorf("expected retention at %d backups, got %d", constants.MaxBackups, len(list))
	}
	// Newest first; the seeded oldest snapshots must be the ones dropped.
	oldest := list[len(list)-1].Timestamp
	if oldest.Before(base.AddDate(0, 0, 4)) {
		t.Errorf("expected oldest seeds rotated out, oldest remaining %v", oldest)
	}
}
