package constants

// Theme is the color theme preference stored in settings
type Theme string

// FrequencyType tags the frequency variant of a habit
type FrequencyType string

// Color is the presentation color tag of a habit
type Color string

const (
	AppName            = "habits"
	DefaultConfigPath  = "~/.config/habits/habits.json"
	DefaultKeyringUser = "database-connection"
	Version            = "v1.0.0"

	// CurrentVersion is stamped into every persisted and imported document
	CurrentVersion = "1.0.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habits-"

	// ExportFilePrefix is the prefix of exported document filenames
	ExportFilePrefix = "habit-tracker-backup-"

	// Habit name bounds, measured after trimming whitespace
	MinHabitNameLen = 1
	MaxHabitNameLen = 50

	// Statistics windows
	CompletionRateWindowDays = 30
	SparklineDays            = 7
	DefaultHeatmapWeeks      = 12

	// Frequency types
	FrequencyDaily  FrequencyType = "daily"
	FrequencyWeekly FrequencyType = "weekly"
	FrequencyCustom FrequencyType = "custom"

	// Themes
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"

	// Colors
	ColorEmerald Color = "emerald"
	ColorBlue    Color = "blue"
	ColorPurple  Color = "purple"
	ColorOrange  Color = "orange"
	ColorRose    Color = "rose"
	ColorAmber   Color = "amber"

	// Default settings values
	DefaultTheme        = ThemeSystem
	DefaultWeekStartsOn = 1
)
