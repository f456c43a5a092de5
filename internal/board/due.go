package board

import (
	"math"
	"time"

	"github.com/tgienger/taskboard/internal/models"
)

// DueSoonDays is the default due-soon window in days, inclusive
const DueSoonDays = 3

const day = 24 * time.Hour

// IsOverdue reports whether t has a due date before now
func IsOverdue(t models.Task, now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now)
}

// DaysUntilDue is the number of calendar days until the due date, rounded
// up. ok is false when t has no due date.
func DaysUntilDue(t models.Task, now time.Time) (days int, ok bool) {
	if t.DueDate == nil {
		return 0, false
	}
	d := t.DueDate.Sub(now)
	return int(math.Ceil(float64(d) / float64(day))), true
}

// IsDueSoon reports whether t is due within DueSoonDays and not yet overdue
func IsDueSoon(t models.Task, now time.Time) bool {
	return IsDueWithin(t, now, DueSoonDays)
}

// IsDueWithin is IsDueSoon with a configurable window
func IsDueWithin(t models.Task, now time.Time, window int) bool {
	if IsOverdue(t, now) {
		return false
	}
	days, ok := DaysUntilDue(t, now)
	return ok && days >= 0 && days <= window
}
