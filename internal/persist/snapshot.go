package persist

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tgienger/taskboard/internal/models"
	"go.uber.org/zap"
)

// Keys used in the backing
const (
	StateKey      = "taskApp"
	ThemeKey      = "theme"
	CelebratedKey = "celebratedBadges"
	FiltersKey    = "lastFilters"
)

// LoadState reads the snapshot. A missing, unreadable or malformed snapshot
// yields the empty state; the problem is logged, never returned.
func LoadState(b Backing, log *zap.Logger) models.State {
	if log == nil {
		log = zap.NewNop()
	}

	raw, err := b.Get(StateKey)
	if err != nil {
		log.Warn("persist: read snapshot failed, starting empty", zap.Error(err))
		return models.Empty()
	}
	if strings.TrimSpace(raw) == "" {
		return models.Empty()
	}

	s, err := DecodeState([]byte(raw))
	if err != nil {
		log.Warn("persist: discarding malformed snapshot",
			zap.Error(err),
			zap.Int("bytes", len(raw)))
		return models.Empty()
	}

	log.Debug("persist: snapshot loaded",
		zap.Int("projects", len(s.Projects)),
		zap.Int("tasks", len(s.Tasks)))
	return s
}

// SaveState writes the full snapshot
func SaveState(b Backing, s models.State) error {
	data, err := EncodeState(s)
	if err != nil {
		return err
	}
	if err := b.Set(StateKey, string(data)); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// EncodeState serializes the state with non-nil collections
func EncodeState(s models.State) ([]byte, error) {
	s = normalize(s)
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeState parses a snapshot and repairs what older writers left
// inconsistent: Done tasks get a completion time (their creation time, or
// the load time when that is unknown), other tasks lose theirs, and tasks
// pointing at a project that no longer exists are moved to "no project".
func DecodeState(data []byte) (models.State, error) {
	var s models.State
	if err := json.Unmarshal(data, &s); err != nil {
		return models.Empty(), fmt.Errorf("decode snapshot: %w", err)
	}
	return repair(normalize(s), time.Now()), nil
}

func normalize(s models.State) models.State {
	if s.Projects == nil {
		s.Projects = []models.Project{}
	}
	if s.Tasks == nil {
		s.Tasks = []models.Task{}
	}
	return s
}

func repair(s models.State, now time.Time) models.State {
	tasks := make([]models.Task, len(s.Tasks))
	for i, t := range s.Tasks {
		if t.ProjectID != nil {
			if _, ok := s.Project(*t.ProjectID); !ok {
				t.ProjectID = nil
			}
		}
		doneAt := now
		if !t.CreatedAt.IsZero() {
			doneAt = t.CreatedAt
		}
		tasks[i] = t.MoveTo(t.Status, doneAt)
	}
	s.Tasks = tasks
	return s
}
