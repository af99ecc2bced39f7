package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Setting keys. Each one is also a flag name and, upper-cased with the
// BATTLESHIP_ prefix, an environment variable.
const (
	keyDB          = "db"
	keyFPS         = "fps"
	keySeed        = "seed"
	keyConfig      = "config"
	keyLogLevel    = "log-level"
	keyLogFile     = "log-file"
	keySSHAddr     = "ssh"
	keyHostKey     = "host-key"
	keyIdleTimeout = "idle-timeout"
)

// settings merges flags, BATTLESHIP_* environment variables and
// ~/.battleship/settings.yaml, in that order of precedence.
var settings = viper.New()

// loadSettings reads the settings file and binds the flags of cmd.
func loadSettings(cmd *cobra.Command) error {
	settings.SetDefault(keyDB, "~/.battleship/history.db")
	settings.SetDefault(keyFPS, 30)
	settings.SetDefault(keySeed, 0)
	settings.SetDefault(keyLogLevel, "info")
	settings.SetDefault(keyLogFile, "~/.battleship/battleship.log")
	settings.SetDefault(keySSHAddr, ":23234")
	settings.SetDefault(keyIdleTimeout, 30)

	settings.SetEnvPrefix("BATTLESHIP")
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()

	settings.SetConfigName("settings")
	settings.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		settings.AddConfigPath(filepath.Join(home, ".battleship"))
	}
	if err := settings.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading settings file: %w", err)
		}
	}

	if err := settings.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}
	return nil
}

// setupLogging configures the default logger. Interactive commands log to
// a file because the terminal belongs to the UI; serve logs to stderr.
func setupLogging(toStderr bool) error {
	level, err := log.ParseLevel(settings.GetString(keyLogLevel))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", settings.GetString(keyLogLevel), err)
	}
	log.SetLevel(level)
	log.SetReportTimestamp(true)

	if toStderr {
		log.SetOutput(os.Stderr)
		return nil
	}

	path := settings.GetString(keyLogFile)
	if path == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	log.SetOutput(f)
	return nil
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
