package store

import (
	"sync"
	"time"

	"github.com/tgienger/taskboard/internal/models"
)

// IDs hands out timestamp-derived ids (Unix milliseconds). Two ids issued in
// the same millisecond still differ: the later one is bumped past the last.
type IDs struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDs(now func() time.Time) *IDs {
	if now == nil {
		now = time.Now
	}
	return &IDs{now: now}
}

// Seed makes sure future ids are above every id already in s
func (g *IDs) Seed(s models.State) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, p := range s.Projects {
		g.last = max(g.last, p.ID)
	}
	for _, t := range s.Tasks {
		g.last = max(g.last, t.ID)
	}
}

func (g *IDs) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
