package board

import (
	"slices"

	"github.com/tgienger/taskboard/internal/models"
)

// ColumnTasks returns the tasks of one status column that pass f, highest
// priority first, then by due date with undated tasks last.
func ColumnTasks(s models.State, status models.Status, f Filters) []models.Task {
	out := make([]models.Task, 0)
	for _, t := range s.Tasks {
		if t.Status != status {
			continue
		}
		if !matchCategory(t, f.Category) ||
			!matchPriority(t, f.Priority) ||
			!matchProject(t, f.Project) ||
			!matchText(s, t, f.Search) {
			continue
		}
		out = append(out, t)
	}
	slices.SortStableFunc(out, compareTasks)
	return out
}

func compareTasks(a, b models.Task) int {
	if wa, wb := a.Priority.Weight(), b.Priority.Weight(); wa != wb {
		return wb - wa
	}
	switch {
	case a.DueDate != nil && b.DueDate != nil:
		return a.DueDate.Compare(*b.DueDate)
	case a.DueDate != nil:
		return -1
	case b.DueDate != nil:
		return 1
	}
	return 0
}

// Columns holds the three status columns in display order
type Columns struct {
	Todo       []models.Task
	InProgress []models.Task
	Done       []models.Task
}

// Get returns the column for status
func (c Columns) Get(status models.Status) []models.Task {
	switch status {
	case models.StatusInProgress:
		return c.InProgress
	case models.StatusDone:
		return c.Done
	}
	return c.Todo
}

// Len is the number of tasks across all columns
func (c Columns) Len() int {
	return len(c.Todo) + len(c.InProgress) + len(c.Done)
}

// Board projects every column with the same filters
func Board(s models.State, f Filters) Columns {
	return Columns{
		Todo:       ColumnTasks(s, models.StatusTodo, f),
		InProgress: ColumnTasks(s, models.StatusInProgress, f),
		Done:       ColumnTasks(s, models.StatusDone, f),
	}
}
