package views

import (
	"time"

	"github.com/tgienger/taskboard/internal/board"
	"github.com/tgienger/taskboard/internal/persist"
	"github.com/tgienger/taskboard/internal/store"
)

// Env is what the views share: the store they dispatch into and the
// preferences they read and write.
type Env struct {
	Store *store.Store
	Prefs *persist.Preferences
	Now   func() time.Time
	// Due-soon window in days
	DueSoonDays int
}

func (e Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e Env) dueSoon() int {
	if e.DueSoonDays <= 0 {
		return board.DueSoonDays
	}
	return e.DueSoonDays
}

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// ProjectColors are offered by the project form, in cycle order
var ProjectColors = []string{
	"#4f46e5", "#3b82f6", "#06b6d4", "#10b981",
	"#84cc16", "#f59e0b", "#ef4444", "#ec4899",
}
