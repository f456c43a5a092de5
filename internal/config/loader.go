// Package config loads taskboard settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides
const EnvPrefix = "TASKBOARD"

// Load reads the global config file, or path when given, over the defaults.
// A missing global file is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, cfg)

	file := path
	if file == "" {
		file = GlobalConfigPath()
	}
	v.SetConfigFile(file)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		if path != "" || !missing {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// are absent from the file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("logging.development", cfg.Logging.Development)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("ui.dark", cfg.UI.Dark)
	v.SetDefault("board.due_soon_days", cfg.Board.DueSoonDays)
	v.SetDefault("pomodoro.focus", cfg.Pomodoro.Focus)
	v.SetDefault("pomodoro.break", cfg.Pomodoro.Break)
	v.SetDefault("pomodoro.long_break", cfg.Pomodoro.LongBreak)
}

// Validate checks values viper cannot
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend)
	}
	if c.Board.DueSoonDays < 0 {
		return fmt.Errorf("board.due_soon_days: must not be negative")
	}
	if c.Pomodoro.Focus <= 0 || c.Pomodoro.Break <= 0 || c.Pomodoro.LongBreak <= 0 {
		return fmt.Errorf("pomodoro: durations must be positive")
	}
	return nil
}

// GlobalConfigPath returns the path to the user config file
func GlobalConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "taskboard", "config.yaml")
}
