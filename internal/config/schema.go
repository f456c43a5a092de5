package config

import "time"

// Config is the full taskboard configuration
type Config struct {
	// Where the database, file backing and log live. Empty means the XDG
	// data dir.
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	Storage  StorageConfig  `yaml:"storage" mapstructure:"storage"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
	UI       UIConfig       `yaml:"ui" mapstructure:"ui"`
	Board    BoardConfig    `yaml:"board" mapstructure:"board"`
	Pomodoro PomodoroConfig `yaml:"pomodoro" mapstructure:"pomodoro"`
}

// StorageConfig selects the snapshot backing
type StorageConfig struct {
	// sqlite, file or memory
	Backend string `yaml:"backend" mapstructure:"backend"`
}

type LoggingConfig struct {
	Development bool `yaml:"development" mapstructure:"development"`
	// Log file; "-" is stderr. Empty means taskboard.log in the data dir.
	File string `yaml:"file" mapstructure:"file"`
}

type UIConfig struct {
	// Initial theme until the user toggles it
	Dark bool `yaml:"dark" mapstructure:"dark"`
}

type BoardConfig struct {
	DueSoonDays int `yaml:"due_soon_days" mapstructure:"due_soon_days"`
}

type PomodoroConfig struct {
	Focus     time.Duration `yaml:"focus" mapstructure:"focus"`
	Break     time.Duration `yaml:"break" mapstructure:"break"`
	LongBreak time.Duration `yaml:"long_break" mapstructure:"long_break"`
}

// MarshalYAML writes durations as "25m0s" rather than nanoseconds
func (p PomodoroConfig) MarshalYAML() (any, error) {
	return map[string]string{
		"focus":      p.Focus.String(),
		"break":      p.Break.String(),
		"long_break": p.LongBreak.String(),
	}, nil
}
