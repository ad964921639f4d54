package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmahoney/tend/internal/backup"
	"github.com/kmahoney/tend/internal/logger"
	"github.com/kmahoney/tend/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	repo, err := ctx.Repo()
	if err != nil {
		return err
	}

	// Automatic snapshot on TUI startup, after a successful load.
	mgr := backup.NewManager(ctx.Store.Path())
	if _, err := mgr.Create(repo.State()); err != nil {
		logger.Warn("automatic backup failed", "error", err)
	}

	p := tea.NewProgram(tui.New(repo), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
