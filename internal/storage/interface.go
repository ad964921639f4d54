package storage

import "github.com/kmahoney/tend/internal/models"

// Provider is the persistence boundary. The repository holds the working
// state in memory; providers only load it at startup and write it back after
// mutations. Any durable key-value or document store can sit behind this.
type Provider interface {
	// Lifecycle
	Init() error
	Load() (models.State, error)
	Close() error

	// Save writes the full application state.
	Save(models.State) error

	// Utils
	Path() string
}
