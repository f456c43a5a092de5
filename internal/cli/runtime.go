package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tgienger/taskboard/internal/config"
	"github.com/tgienger/taskboard/internal/db"
	"github.com/tgienger/taskboard/internal/events"
	"github.com/tgienger/taskboard/internal/logger"
	"github.com/tgienger/taskboard/internal/persist"
	"github.com/tgienger/taskboard/internal/store"
	"go.uber.org/zap"
)

// LogFileName is created in the data dir unless a log file is configured
const LogFileName = "taskboard.log"

// runtime is everything a command needs to work on the board
type runtime struct {
	cfg     *config.Config
	dataDir string
	backing persist.Backing
	bus     *events.Bus
	store   *store.Store
	prefs   *persist.Preferences
	closers []func() error

	mu       sync.Mutex
	saveErrs []error
}

// loadConfig reads the config file and applies the flag overrides
func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.backend != "" {
		cfg.Storage.Backend = o.backend
	}
	if o.ephemeral {
		cfg.Storage.Backend = config.BackendMemory
	}
	if o.logFile != "" {
		cfg.Logging.File = o.logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// open loads the config, starts the logger and opens the configured
// backing with a store on top of it.
func (o *options) open() (*runtime, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		if dataDir, err = db.DefaultDataDir(); err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	logPath := cfg.Logging.File
	if logPath == "" {
		logPath = filepath.Join(dataDir, LogFileName)
	}
	if err := logger.Init(cfg.Logging.Development, logPath); err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg, dataDir: dataDir, bus: events.NewBus()}
	rt.closers = append(rt.closers, func() error {
		logger.Sync()
		return nil
	})

	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		database, err := db.New(dataDir)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		rt.backing = database
		rt.closers = append(rt.closers, database.Close)
	case config.BackendFile:
		fb, err := persist.NewFileBacking(dataDir)
		if err != nil {
			return nil, fmt.Errorf("open file backing: %w", err)
		}
		rt.backing = fb
	default:
		rt.backing = persist.NewMemoryBacking()
	}

	logger.Info("taskboard: opened",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("data_dir", dataDir))

	rt.bus.Subscribe(events.PersistFailed, func(e events.Event) {
		if p, ok := e.Payload.(events.PersistFailedPayload); ok {
			rt.mu.Lock()
			rt.saveErrs = append(rt.saveErrs, p.Err)
			rt.mu.Unlock()
		}
	})
	rt.store = store.New(rt.backing, rt.bus, store.WithLogger(logger.L()))
	rt.prefs = persist.NewPreferences(rt.backing)
	return rt, nil
}

// SaveErr reports the changes the store could not persist since open
func (rt *runtime) SaveErr() error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if len(rt.saveErrs) == 0 {
		return nil
	}
	return fmt.Errorf("%d change(s) not saved: %w", len(rt.saveErrs), rt.saveErrs[0])
}

// Close releases the backing and flushes the log, last opened first
func (rt *runtime) Close() error {
	var first error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}
