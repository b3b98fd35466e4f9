package main

import (
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/jrr00064/habit-tracker/internal/cli"
	"github.com/jrr00064/habit-tracker/internal/cli/backups"
	"github.com/jrr00064/habit-tracker/internal/cli/habits"
	"github.com/jrr00064/habit-tracker/internal/cli/insights"
	"github.com/jrr00064/habit-tracker/internal/cli/settings"
	"github.com/jrr00064/habit-tracker/internal/cli/system"
	"github.com/jrr00064/habit-tracker/internal/constants"
	"github.com/jrr00064/habit-tracker/internal/errors"
	"github.com/jrr00064/habit-tracker/internal/logger"
	"github.com/jrr00064/habit-tracker/internal/storage"
	"github.com/jrr00064/habit-tracker/internal/storage/postgres"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Store location: a .json or .db file path, a PostgreSQL connection string without a password, 'keyring' for a connection string kept in the OS keyring, or :memory:." env:"HABITS_CONFIG" default:"${default_config}"`
	Debug    bool   `help:"Log debug output to stderr." env:"HABITS_DEBUG"`
	LogLevel string `help:"Minimum level written to the log file (debug, info, warn, error)." env:"HABITS_LOG_LEVEL"`

	habits.HabitCmd `embed:""`

	Today    insights.TodayCmd    `cmd:"" help:"Show today's progress." default:"1"`
	Stats    insights.StatsCmd    `cmd:"" help:"Show streaks and completion rates."`
	Heatmap  insights.HeatmapCmd  `cmd:"" help:"Show completions per day over recent weeks."`
	Chart    insights.ChartCmd    `cmd:"" help:"Show completions per day over the last week."`
	Overview insights.OverviewCmd `cmd:"" help:"Show totals across all active habits."`

	Init     system.InitCmd       `cmd:"" help:"Initialize habits storage."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Export   system.ExportCmd     `cmd:"" help:"Export all data as a JSON document."`
	Import   system.ImportCmd     `cmd:"" help:"Replace all data with an exported JSON document."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage the database connection string in the OS keyring."`
	Diag     system.DebugCmd      `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
}

func main() {
	// a missing .env file is fine
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track daily habits, streaks and completion rates"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, Level: CLI.LogLevel, Dir: configDir(CLI.Config)}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	store, err := storage.Open(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := cli.NewContext(store)
	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close store", "error", closeErr)
	}
	if err != nil {
		errors.Fatal(err)
	}
	_ = logger.Close()
}

// configDir is where logs are written: beside a file store, otherwise the
// default config directory
func configDir(config string) string {
	if config == storage.MemoryConfig || config == storage.KeyringConfig || postgres.IsConnString(config) {
		config = constants.DefaultConfigPath
	}
	path, err := storage.ExpandPath(config)
	if err != nil {
		return os.TempDir()
	}
	return filepath.Dir(path)
}
