package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kmahoney/tend/internal/constants"
	"github.com/kmahoney/tend/internal/habits"
	"github.com/kmahoney/tend/internal/models"
)

// Payload is the export bundle. Every field is optional on import; whatever
// is present gets applied.
type Payload struct {
	Habits      []models.Habit       `json:"habits,omitempty"`
	Completions models.CompletionLog `json:"completions,omitempty"`
	Stats       *models.UserStats    `json:"stats,omitempty"`
	Profile     *models.Profile      `json:"profile,omitempty"`
	Theme       *models.Theme        `json:"theme,omitempty"`
	ExportDate  time.Time            `json:"exportDate"`
}

// Export serializes the full application state as an export payload.
func Export(state models.State) ([]byte, error) {
	payload := Payload{
		Habits:      state.Habits,
		Completions: state.Completions,
		Stats:       state.Stats,
		Profile:     state.Profile,
		Theme:       state.Theme,
		ExportDate:  time.Now(),
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export: %w", err)
	}
	return data, nil
}

// Import applies the fields present in an export payload to the repository.
// Partial payloads are valid: absent fields leave current state untouched.
func Import(repo *habits.Repository, data []byte) error {
	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("failed to parse import data: %w", err)
	}

	if payload.Habits != nil || payload.Completions != nil {
		habitList := payload.Habits
		completions := payload.Completions
		if habitList == nil {
			habitList = repo.Habits()
		}
		if completions == nil {
			completions = repo.Completions()
		}
		if err := repo.ReplaceHabits(habitList, completions); err != nil {
			return err
		}
	}
	if payload.Stats != nil {
		if err := repo.SetStats(*payload.Stats); err != nil {
			return err
		}
	}
	if payload.Profile != nil {
		if err := repo.SetProfile(*payload.Profile); err != nil {
			return err
		}
	}
	if payload.Theme != nil {
		if err := repo.SetTheme(payload.Theme.Dark); err != nil {
			return err
		}
	}
	return nil
}

// Info describes one export file on disk.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager writes timestamped export snapshots next to the store and rotates
// old ones out.
type Manager struct {
	backupDir string
}

// NewManager creates a manager for the store at dbPath.
func NewManager(dbPath string) *Manager {
	configDir := filepath.Dir(dbPath)
	return &Manager{
		backupDir: filepath.Join(configDir, constants.BackupDirName),
	}
}

// Dir returns the backup directory path.
func (m *Manager) Dir() string {
	return m.backupDir
}

// Create writes a new export snapshot and rotates old ones.
func (m *Manager) Create(state models.State) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	data, err := Export(state)
	if err != nil {
		return "", err
	}

	// Minute-precision names first, seconds and a counter only on collision.
	timestamp := time.Now().Format("20060102-1504")
	path := filepath.Join(m.backupDir, constants.BackupFilePrefix+timestamp+constants.BackupFileSuffix)
	if _, err := os.Stat(path); err == nil {
		timestamp = time.Now().Format("20060102-150405")
		path = filepath.Join(m.backupDir, constants.BackupFilePrefix+timestamp+constants.BackupFileSuffix)
		counter := 1
		for {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				break
			}
			name := fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, timestamp, counter, constants.BackupFileSuffix)
			path = filepath.Join(m.backupDir, name)
			counter++
			if counter > 100 {
				return "", fmt.Errorf("failed to generate unique backup filename")
			}
		}
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if err := m.rotate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
	}

	return path, nil
}

// List returns all export snapshots, newest first.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
			continue
		}

		timestampStr := strings.TrimPrefix(name, constants.BackupFilePrefix)
		timestampStr = strings.TrimSuffix(timestampStr, constants.BackupFileSuffix)
		if idx := strings.LastIndex(timestampStr, "-"); idx > 8 {
			// Strip a collision counter suffix.
			tail := timestampStr[idx+1:]
			if len(tail) != 4 && len(tail) != 6 {
				timestampStr = timestampStr[:idx]
			}
		}

		timestamp, err := time.Parse("20060102-1504", timestampStr)
		if err != nil {
			timestamp, err = time.Parse("20060102-150405", timestampStr)
			if err != nil {
				continue
			}
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		backups = append(backups, Info{Path: path, Timestamp: timestamp, Size: info.Size()})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// rotate deletes the oldest snapshots beyond MaxBackups.
func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}
