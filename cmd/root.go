package cmd

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/lepinkainen/roster/internal/config"
	"github.com/lepinkainen/roster/internal/people"
	"github.com/spf13/viper"
)

var (
	stdout io.Writer = os.Stdout
	// Log lines go to stderr so list and add output stays parseable.
	logOutput io.Writer = os.Stderr

	openStore = func() *people.Store {
		return people.Open(config.DatabaseFile)
	}
)

// CLI represents the complete command structure for the roster application
type CLI struct {
	// Global flags
	DB       string `help:"Path to the SQLite database file (defaults to <documents>/roster/db.sqlite3)" type:"path"`
	LogLevel string `help:"Minimum log level (debug, info, warn, error)"`

	Add    AddCmd    `cmd:"" help:"Add a person"`
	List   ListCmd   `cmd:"" help:"List all stored people"`
	Delete DeleteCmd `cmd:"" help:"Delete people by id"`
	Import ImportCmd `cmd:"" help:"Import people from a CSV file with a name,age header"`
	Export ExportCmd `cmd:"" help:"Export all people to a JSON or YAML file"`
	UI     UICmd     `cmd:"" name:"ui" help:"Open the interactive form"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging(logOutput, slog.LevelInfo)

	if err := initConfig(); err != nil {
		slog.Error("Fatal error config file", "error", err)
		os.Exit(1)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("roster"),
		kong.Description("Keep a list of people and their ages in a local SQLite file."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)
	initLogging(logOutput, parseLevel(config.LogLevel))

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() error {
	config.SetDefaults()

	viper.SetEnvPrefix("roster")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(dir + string(os.PathSeparator) + config.AppDirName)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		slog.Debug("Config file not found, using defaults")
	}

	config.InitConfig()
	return nil
}

func updateGlobalConfig(cli *CLI) {
	if cli.DB != "" {
		config.SetDatabaseFile(cli.DB)
	}
	if cli.Export.Overwrite {
		config.SetOverwriteFiles(true)
	}
	if cli.LogLevel != "" {
		viper.Set("log.level", cli.LogLevel)
		config.LogLevel = cli.LogLevel
	}
}

func initLogging(w io.Writer, level slog.Level) {
	handler := humanlog.NewHandler(w, &humanlog.Options{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func parseLevel(name string) slog.Level {
	if name == "" {
		return slog.LevelInfo
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		slog.Warn("Unknown log level, using info", "level", name)
		return slog.LevelInfo
	}
	return level
}
