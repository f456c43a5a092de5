package store

import (
	"sync"
	"time"

	"github.com/tgienger/taskboard/internal/events"
	"github.com/tgienger/taskboard/internal/models"
	"github.com/tgienger/taskboard/internal/persist"
	"go.uber.org/zap"
)

// Store owns the live board state. It persists the full snapshot after every
// change and announces changes on the bus.
type Store struct {
	mu      sync.Mutex
	state   models.State
	backing persist.Backing
	bus     *events.Bus
	ids     *IDs
	now     func() time.Time
	log     *zap.Logger
}

type Option func(*Store)

// WithClock replaces time.Now for completion timestamps and ids
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// New loads the snapshot from backing, starting empty if there is none.
// bus may be nil.
func New(backing persist.Backing, bus *events.Bus, opts ...Option) *Store {
	s := &Store{
		backing: backing,
		bus:     bus,
		now:     time.Now,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.state = persist.LoadState(backing, s.log)
	s.ids = NewIDs(s.now)
	s.ids.Seed(s.state)
	return s
}

// State returns the current state. Callers must treat it as read-only.
func (s *Store) State() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// NextID returns a fresh project or task id
func (s *Store) NextID() int64 {
	return s.ids.Next()
}

// Dispatch applies cmd and returns the resulting state. A failed save is
// logged and published but the in-memory state is kept.
func (s *Store) Dispatch(cmd Command) models.State {
	s.mu.Lock()
	prev := s.state
	next, changed := reduce(prev, cmd, s.now())
	if !changed {
		s.mu.Unlock()
		return prev
	}
	s.state = next
	// Saved under the lock so snapshots land in dispatch order
	saveErr := persist.SaveState(s.backing, next)
	s.mu.Unlock()

	name := cmd.Name()
	s.log.Debug("store: applied",
		zap.String("command", name),
		zap.Int("projects", len(next.Projects)),
		zap.Int("tasks", len(next.Tasks)))

	if saveErr != nil {
		s.log.Warn("store: save failed", zap.String("command", name), zap.Error(saveErr))
		s.publish(events.PersistFailed, events.PersistFailedPayload{Err: saveErr})
	}

	// Completions go first so the celebration is already running when
	// StateChanged subscribers look at the new state
	for _, t := range newlyCompleted(prev, next) {
		s.publish(events.TaskCompleted, events.TaskCompletedPayload{TaskID: t.ID, Title: t.Title})
	}
	s.publish(events.StateChanged, events.StateChangedPayload{Command: name})
	return next
}

func (s *Store) publish(kind events.Kind, payload any) {
	if s.bus != nil {
		s.bus.Publish(kind, payload)
	}
}

// newlyCompleted lists tasks that are Done in next but were not Done (or did
// not exist) in prev.
func newlyCompleted(prev, next models.State) []models.Task {
	var out []models.Task
	for _, t := range next.Tasks {
		if t.Status != models.StatusDone {
			continue
		}
		if old, ok := prev.Task(t.ID); ok && old.Status == models.StatusDone {
			continue
		}
		out = append(out, t)
	}
	return out
}
