package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tgienger/taskboard/internal/models"
)

func TestDueClassification(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		due     *time.Time
		overdue bool
		soon    bool
		days    int
	}{
		{"no due date", nil, false, false, 0},
		{"yesterday", date(2024, 5, 31), true, false, -1},
		{"earlier today", date(2024, 6, 1), true, false, 0},
		{"tomorrow", date(2024, 6, 2), false, true, 1},
		{"in three days", date(2024, 6, 4), false, true, 3},
		{"in four days", date(2024, 6, 5), false, false, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := models.Task{ID: 1, DueDate: tt.due}
			assert.Equal(t, tt.overdue, IsOverdue(task, now))
			assert.Equal(t, tt.soon, IsDueSoon(task, now))

			days, ok := DaysUntilDue(task, now)
			assert.Equal(t, tt.due != nil, ok)
			assert.Equal(t, tt.days, days)
		})
	}
}

func TestDueExactlyNow(t *testing.T) {
	now := models.Date(2024, 6, 1)
	task := models.Task{ID: 1, DueDate: &now}

	assert.False(t, IsOverdue(task, now))
	assert.True(t, IsDueSoon(task, now))
}

func TestIsDueWithin(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local)
	task := models.Task{ID: 1, DueDate: date(2024, 6, 7)}

	assert.False(t, IsDueWithin(task, now, 3))
	assert.True(t, IsDueWithin(task, now, 7))
}
