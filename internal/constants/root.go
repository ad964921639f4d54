package constants

import "time"

const (
	AppName           = "tend"
	DefaultConfigPath = "~/.config/tend/tend.db"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// WeekStart pins the chart week convention. Both Monday-start and
	// Sunday-start variants exist in the wild; series generation and the
	// weekly summary use this value everywhere.
	WeekStart = time.Monday

	// StreakMaxDays bounds the backward streak walk so a malformed log can
	// never loop forever. Ten years of daily completions is far beyond any
	// realistic streak.
	StreakMaxDays = 3650

	// ChartMaxPoints caps a chart series; longer series are thinned by
	// fixed-stride subsampling.
	ChartMaxPoints = 100

	// MonthWindowDays is the lookback for the month time range.
	MonthWindowDays = 30

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tend-"
	BackupFileSuffix = ".json"

	// StoreVersion is the on-disk schema version for the JSON store.
	StoreVersion = 1
)
