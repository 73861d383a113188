package testutil

import (
	"testing"

	"github.com/lepinkainen/roster/internal/config"
	"github.com/spf13/viper"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	DatabaseFile   string
	LogLevel       string
	OverwriteFiles bool
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		DatabaseFile:   config.DatabaseFile,
		LogLevel:       config.LogLevel,
		OverwriteFiles: config.OverwriteFiles,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.DatabaseFile = state.DatabaseFile
	config.LogLevel = state.LogLevel
	config.OverwriteFiles = state.OverwriteFiles
}

// ResetConfig resets viper and restores config globals when the test completes.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetupTestDatabase points the configured database file into env and
// returns its path. Config is restored when the test completes.
func SetupTestDatabase(t *testing.T, env *TestEnv) string {
	t.Helper()

	ResetConfig(t)
	dbPath := env.Path("roster", config.DatabaseFileName)
	config.SetDatabaseFile(dbPath)
	return dbPath
}
