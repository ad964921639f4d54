package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kmahoney/tend/internal/constants"
	"github.com/kmahoney/tend/internal/models"
)

// document is the on-disk shape of the JSON store. Each logical collection
// keeps its own top-level key.
type document struct {
	Version     int                  `json:"version"`
	Habits      []models.Habit       `json:"habits"`
	Completions models.CompletionLog `json:"completions"`
	Stats       *models.UserStats    `json:"stats,omitempty"`
	Profile     *models.Profile      `json:"profile,omitempty"`
	Theme       *models.Theme        `json:"theme,omitempty"`
}

type JSONStore struct {
	path string
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	return s.write(document{
		Version:     constants.StoreVersion,
		Habits:      []models.Habit{},
		Completions: make(models.CompletionLog),
	})
}

func (s *JSONStore) Load() (models.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.State{}, fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return models.State{}, fmt.Errorf("failed to read storage: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.State{}, fmt.Errorf("failed to parse storage: %w", err)
	}

	state := models.State{
		Habits:      doc.Habits,
		Completions: doc.Completions,
		Stats:       doc.Stats,
		Profile:     doc.Profile,
		Theme:       doc.Theme,
	}
	state.Normalize()
	return state, nil
}

func (s *JSONStore) Save(state models.State) error {
	return s.write(document{
		Version:     constants.StoreVersion,
		Habits:      state.Habits,
		Completions: state.Completions,
		Stats:       state.Stats,
		Profile:     state.Profile,
		Theme:       state.Theme,
	})
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) write(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Path() string {
	return s.path
}
