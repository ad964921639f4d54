package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/kmahoney/tend/internal/backup"
	"github.com/kmahoney/tend/internal/stats"
)

type ExportCmd struct {
	Out string `short:"o" help:"Output file (default: stdout)."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	repo, err := ctx.Repo()
	if err != nil {
		return err
	}

	// Refresh the cached stats snapshot so the export carries current
	// numbers.
	snapshot := stats.UserStats(repo.Habits(), repo.Completions(), time.Now())
	if err := repo.SetStats(snapshot); err != nil {
		return err
	}

	data, err := backup.Export(repo.State())
	if err != nil {
		return err
	}

	if c.Out == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(c.Out, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported to %s\n", c.Out)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"Export file to import." type:"path"`
}

func (c *ImportCmd) Run(ctx *Context) error {
	repo, err := ctx.Repo()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	if err := backup.Import(repo, data); err != nil {
		return err
	}

	fmt.Printf("Imported %s (%d habits)\n", c.File, len(repo.Habits()))
	return nil
}

type BackupCmd struct {
	Create BackupCreateCmd `cmd:"" help:"Create a backup snapshot." default:"1"`
	List   BackupListCmd   `cmd:"" help:"List available backups."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	repo, err := ctx.Repo()
	if err != nil {
		return err
	}

	manager := backup.NewManager(ctx.Store.Path())
	path, err := manager.Create(repo.State())
	if err != nil {
		return err
	}

	fmt.Printf("Created backup: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	manager := backup.NewManager(ctx.Store.Path())
	backups, err := manager.List()
	if err != nil {
		return err
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}

	for _, b := range backups {
		fmt.Printf("%s  %6d bytes  %s\n", b.Timestamp.Format("2006-01-02 15:04"), b.Size, b.Path)
	}
	return nil
}
