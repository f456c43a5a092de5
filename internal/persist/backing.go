// Package persist loads and saves the board snapshot and user preferences
// through a key/value Backing.
package persist

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

// Backing is a string key/value store. Get returns "" for a missing key.
// *db.DB is the default implementation.
type Backing interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// FileBacking stores each key as <dir>/<key>.json
type FileBacking struct {
	dir string
}

// NewFileBacking creates dir if needed
func NewFileBacking(dir string) (*FileBacking, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileBacking{dir: dir}, nil
}

func (f *FileBacking) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+".json")
}

func (f *FileBacking) Get(key string) (string, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Set writes through a temp file and rename so a crash never leaves a
// half-written snapshot behind.
func (f *FileBacking) Set(key, value string) error {
	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path(key))
}

// MemoryBacking keeps values in memory only
type MemoryBacking struct {
	mu     sync.Mutex
	values map[string]string
	// Err, when set, is returned by every Set call
	Err error
}

func NewMemoryBacking() *MemoryBacking {
	return &MemoryBacking{values: make(map[string]string)}
}

func (m *MemoryBacking) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *MemoryBacking) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.values[key] = value
	return nil
}
