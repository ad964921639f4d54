package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/kmahoney/tend/internal/apperr"
	"github.com/kmahoney/tend/internal/cli"
	"github.com/kmahoney/tend/internal/constants"
	"github.com/kmahoney/tend/internal/logger"
	"github.com/kmahoney/tend/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path." type:"path" default:"~/.config/tend/tend.db"`
	Debug   bool   `help:"Enable debug logging." env:"TEND_DEBUG"`

	Init    cli.InitCmd    `cmd:"" help:"Initialize tend storage."`
	Tui     cli.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Today   cli.TodayCmd   `cmd:"" help:"Show today's checklist."`
	Done    cli.DoneCmd    `cmd:"" help:"Toggle a todo's completion for a day."`
	Stats   cli.StatsCmd   `cmd:"" help:"Show progress charts and summaries."`
	Habit   cli.HabitCmd   `cmd:"" help:"Manage habits."`
	Todo    cli.TodoCmd    `cmd:"" help:"Manage todos within a habit."`
	Export  cli.ExportCmd  `cmd:"" help:"Export all data as JSON."`
	Import  cli.ImportCmd  `cmd:"" help:"Import data from a JSON export."`
	Backup  cli.BackupCmd  `cmd:"" help:"Create or list backup snapshots."`
	Profile cli.ProfileCmd `cmd:"" help:"Show or update the profile."`
	Theme   cli.ThemeCmd   `cmd:"" help:"Show or switch the color theme."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal habit tracker with per-habit todo checklists"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		// Logging is best effort; the CLI still works without it.
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}
	defer store.Close()

	appCtx := &cli.Context{Store: store}

	if err := ctx.Run(appCtx); err != nil {
		apperr.Fatal(err)
	}
}
