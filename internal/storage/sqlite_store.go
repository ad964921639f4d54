package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kmahoney/tend/internal/constants"
	"github.com/kmahoney/tend/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS habits (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	category   TEXT NOT NULL,
	created_at TEXT NOT NULL,
	position   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS todos (
	id       TEXT PRIMARY KEY,
	habit_id TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
	title    TEXT NOT NULL,
	note     TEXT NOT NULL DEFAULT '',
	archived INTEGER NOT NULL DEFAULT 0,
	position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS completions (
	habit_id TEXT NOT NULL,
	day      TEXT NOT NULL,
	todo_id  TEXT NOT NULL,
	done     INTEGER NOT NULL,
	PRIMARY KEY (habit_id, day, todo_id)
);

CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// meta keys for the auxiliary collections.
const (
	metaStats   = "stats"
	metaProfile = "profile"
	metaTheme   = "theme"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Load() (models.State, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return models.State{}, fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}
	if err := s.open(); err != nil {
		return models.State{}, err
	}

	state := models.NewState()

	if err := s.loadHabits(&state); err != nil {
		return models.State{}, err
	}
	if err := s.loadCompletions(&state); err != nil {
		return models.State{}, err
	}
	if err := s.loadMeta(&state); err != nil {
		return models.State{}, err
	}

	return state, nil
}

func (s *SQLiteStore) loadHabits(state *models.State) error {
	rows, err := s.db.Query(`
		SELECT id, title, category, created_at
		FROM habits ORDER BY position`)
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var h models.Habit
		var createdAt string
		if err := rows.Scan(&h.ID, &h.Title, &h.Category, &createdAt); err != nil {
			return err
		}
		h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return fmt.Errorf("failed to parse created_at: %w", err)
		}
		h.Todos = []models.Todo{}
		state.Habits = append(state.Habits, h)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	todoRows, err := s.db.Query(`
		SELECT id, habit_id, title, note, archived
		FROM todos ORDER BY position`)
	if err != nil {
		return fmt.Errorf("failed to load todos: %w", err)
	}
	defer todoRows.Close()

	for todoRows.Next() {
		var t models.Todo
		var habitID string
		var archived int
		if err := todoRows.Scan(&t.ID, &habitID, &t.Title, &t.Note, &archived); err != nil {
			return err
		}
		t.Archived = archived != 0
		if h, ok := state.Habit(habitID); ok {
			h.Todos = append(h.Todos, t)
		}
	}
	return todoRows.Err()
}

func (s *SQLiteStore) loadCompletions(state *models.State) error {
	rows, err := s.db.Query(`SELECT habit_id, day, todo_id, done FROM completions`)
	if err != nil {
		return fmt.Errorf("failed to load completions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var habitID, day, todoID string
		var done int
		if err := rows.Scan(&habitID, &day, &todoID, &done); err != nil {
			return err
		}
		if done != 0 {
			state.Completions.Toggle(habitID, day, todoID)
		}
	}
	return rows.Err()
}

func (s *SQLiteStore) loadMeta(state *models.State) error {
	rows, err := s.db.Query(`SELECT key, value FROM meta`)
	if err != nil {
		return fmt.Errorf("failed to load meta: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return err
		}
		switch key {
		case metaStats:
			var stats models.UserStats
			if err := json.Unmarshal([]byte(value), &stats); err != nil {
				return fmt.Errorf("failed to parse cached stats: %w", err)
			}
			state.Stats = &stats
		case metaProfile:
			var profile models.Profile
			if err := json.Unmarshal([]byte(value), &profile); err != nil {
				return fmt.Errorf("failed to parse profile: %w", err)
			}
			state.Profile = &profile
		case metaTheme:
			var theme models.Theme
			if err := json.Unmarshal([]byte(value), &theme); err != nil {
				return fmt.Errorf("failed to parse theme: %w", err)
			}
			state.Theme = &theme
		}
	}
	return rows.Err()
}

// Save rewrites the full state in a single transaction. The data set is
// personal-scale, so a rewrite stays cheap and keeps the provider contract
// trivial for every backend.
func (s *SQLiteStore) Save(state models.State) error {
	if err := s.open(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"habits", "todos", "completions", "meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, h := range state.Habits {
		_, err := tx.Exec(`
			INSERT INTO habits (id, title, category, created_at, position)
			VALUES (?, ?, ?, ?, ?)`,
			h.ID, h.Title, string(h.Category), h.CreatedAt.Format(time.RFC3339), i)
		if err != nil {
			return fmt.Errorf("failed to save habit: %w", err)
		}
		for j, t := range h.Todos {
			archived := 0
			if t.Archived {
				archived = 1
			}
			_, err := tx.Exec(`
				INSERT INTO todos (id, habit_id, title, note, archived, position)
				VALUES (?, ?, ?, ?, ?, ?)`,
				t.ID, h.ID, t.Title, t.Note, archived, j)
			if err != nil {
				return fmt.Errorf("failed to save todo: %w", err)
			}
		}
	}

	for habitID, byDay := range state.Completions {
		for day, byTodo := range byDay {
			for todoID, done := range byTodo {
				if !done {
					// Explicit false entries are equivalent to absence.
					continue
				}
				_, err := tx.Exec(`
					INSERT INTO completions (habit_id, day, todo_id, done)
					VALUES (?, ?, ?, 1)`,
					habitID, day, todoID)
				if err != nil {
					return fmt.Errorf("failed to save completion: %w", err)
				}
			}
		}
	}

	if err := s.saveMeta(tx, state); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) saveMeta(tx *sql.Tx, state models.State) error {
	put := func(key string, v interface{}) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to serialize %s: %w", key, err)
		}
		if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)`, key, string(data)); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
		return nil
	}

	if state.Stats != nil {
		if err := put(metaStats, state.Stats); err != nil {
			return err
		}
	}
	if state.Profile != nil {
		if err := put(metaProfile, state.Profile); err != nil {
			return err
		}
	}
	if state.Theme != nil {
		if err := put(metaTheme, state.Theme); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Path() string {
	return s.path
}
