package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// AppDirName is the application-private directory under the documents directory
	AppDirName = "roster"
	// DatabaseFileName is the name of the SQLite file holding person records
	DatabaseFileName = "db.sqlite3"
)

// Global configuration variables
var (
	// DatabaseFile is the path of the SQLite database file
	DatabaseFile string
	// LogLevel is the minimum slog level name (debug, info, warn, error)
	LogLevel string
	// OverwriteFiles controls whether export replaces existing files
	OverwriteFiles bool
)

// SetDefaults registers default values for every configuration key
func SetDefaults() {
	viper.SetDefault("database.file", DefaultDatabasePath())
	viper.SetDefault("log.level", "info")
	viper.SetDefault("export.overwrite", false)
}

// InitConfig initializes the global configuration from viper
func InitConfig() {
	SetDefaults()

	DatabaseFile = viper.GetString("database.file")
	LogLevel = viper.GetString("log.level")
	OverwriteFiles = viper.GetBool("export.overwrite")
}

// SetDatabaseFile overrides the database path
func SetDatabaseFile(path string) {
	DatabaseFile = path
	viper.Set("database.file", path)
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
	viper.Set("export.overwrite", overwrite)
}

// DefaultDatabasePath returns <documents>/roster/db.sqlite3.
func DefaultDatabasePath() string {
	return filepath.Join(DocumentsDir(), AppDirName, DatabaseFileName)
}

// DocumentsDir resolves the user's documents directory. XDG_DOCUMENTS_DIR wins
// when set, then $HOME/Documents, then the platform config directory.
func DocumentsDir() string {
	if dir := os.Getenv("XDG_DOCUMENTS_DIR"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, "Documents")
	}
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return dir
	}
	return "."
}
