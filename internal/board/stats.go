package board

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/tgienger/taskboard/internal/models"
)

// Statistics summarizes the board
type Statistics struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	InProgress     int `json:"inProgress"`
	Todo           int `json:"todo"`
	Overdue        int `json:"overdue"`
	CompletionRate int `json:"completionRate"`
}

// Stats counts tasks per status. Overdue uses the same rule as IsOverdue,
// whatever the task's status.
func Stats(s models.State, now time.Time) Statistics {
	var st Statistics
	for _, t := range s.Tasks {
		st.Total++
		switch t.Status {
		case models.StatusDone:
			st.Completed++
		case models.StatusInProgress:
			st.InProgress++
		case models.StatusTodo:
			st.Todo++
		}
		if IsOverdue(t, now) {
			st.Overdue++
		}
	}
	st.CompletionRate = Rate(st.Completed, st.Total)
	return st
}

// Rate is round(100*part/total), or 0 when total is 0
func Rate(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

// ProjectSummary is the per-project slice of Stats
type ProjectSummary struct {
	Project        models.Project `json:"project"`
	Total          int            `json:"total"`
	Completed      int            `json:"completed"`
	CompletionRate int            `json:"completionRate"`
}

// ProjectStats summarizes every project in state order, followed by the
// unassigned tasks when there are any.
func ProjectStats(s models.State) []ProjectSummary {
	out := make([]ProjectSummary, 0, len(s.Projects)+1)
	index := make(map[int64]int, len(s.Projects))
	for i, p := range s.Projects {
		index[p.ID] = i
		out = append(out, ProjectSummary{Project: p})
	}

	none := ProjectSummary{Project: NoProject}
	for _, t := range s.Tasks {
		sum := &none
		if t.ProjectID != nil {
			i, ok := index[*t.ProjectID]
			if !ok {
				continue
			}
			sum = &out[i]
		}
		sum.Total++
		if t.Status == models.StatusDone {
			sum.Completed++
		}
	}
	if none.Total > 0 {
		out = append(out, none)
	}

	for i := range out {
		out[i].CompletionRate = Rate(out[i].Completed, out[i].Total)
	}
	return out
}

// Categories lists the distinct non-empty task categories, sorted
func Categories(s models.State) []string {
	var out []string
	for _, t := range s.Tasks {
		if t.Category != "" && !slices.Contains(out, t.Category) {
			out = append(out, t.Category)
		}
	}
	slices.SortFunc(out, cmp.Compare[string])
	return out
}
