package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
		},
		UI: UIConfig{
			Dark: true,
		},
		Board: BoardConfig{
			DueSoonDays: 3,
		},
		Pomodoro: PomodoroConfig{
			Focus:     25 * time.Minute,
			Break:     5 * time.Minute,
			LongBreak: 15 * time.Minute,
		},
	}
}

const header = "# taskboard configuration\n# Every key can be overridden with TASKBOARD_<KEY>, e.g. TASKBOARD_STORAGE_BACKEND=file\n\n"

// WriteDefault writes the default configuration to path, creating the
// directory if needed
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(header), data...), 0644)
}
