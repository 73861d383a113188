package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func resetViper(t *testing.T) {
	t.Helper()

	origDB, origLevel, origOverwrite := DatabaseFile, LogLevel, OverwriteFiles
	viper.Reset()
	t.Cleanup(func() {
		DatabaseFile, LogLevel, OverwriteFiles = origDB, origLevel, origOverwrite
		viper.Reset()
	})
}

func TestSetOverwriteFiles(t *testing.T) {
	resetViper(t)

	testCases := []struct {
		name     string
		input    bool
		expected bool
	}{
		{
			name:     "set to true",
			input:    true,
			expected: true,
		},
		{
			name:     "set to false",
			input:    false,
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			SetOverwriteFiles(tc.input)
			assert.Equal(t, tc.expected, OverwriteFiles)
			assert.Equal(t, tc.expected, viper.GetBool("export.overwrite"))
		})
	}
}

func TestDocumentsDir_PrefersXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DOCUMENTS_DIR", dir)

	assert.Equal(t, dir, DocumentsDir())
	assert.Equal(t, filepath.Join(dir, AppDirName, DatabaseFileName), DefaultDatabasePath())
}

func TestDocumentsDir_FallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_DOCUMENTS_DIR", "")
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, "Documents"), DocumentsDir())
}

func TestInitConfig_Defaults(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	t.Setenv("XDG_DOCUMENTS_DIR", dir)

	InitConfig()

	assert.Equal(t, filepath.Join(dir, "roster", "db.sqlite3"), DatabaseFile)
	assert.Equal(t, "info", LogLevel)
	assert.False(t, OverwriteFiles)
}

func TestInitConfig_ViperOverrides(t *testing.T) {
	resetViper(t)

	viper.Set("database.file", "/tmp/custom.sqlite3")
	viper.Set("log.level", "debug")
	viper.Set("export.overwrite", true)

	InitConfig()

	assert.Equal(t, "/tmp/custom.sqlite3", DatabaseFile)
	assert.Equal(t, "debug", LogLevel)
	assert.True(t, OverwriteFiles)
}

func TestSetDatabaseFile(t *testing.T) {
	resetViper(t)

	SetDatabaseFile("/data/people.sqlite3")

	assert.Equal(t, "/data/people.sqlite3", DatabaseFile)
	assert.Equal(t, "/data/people.sqlite3", viper.GetString("database.file"))
}
