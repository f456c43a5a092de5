package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/tgienger/taskboard/internal/models"
)

type allDoc struct {
	Tasks          []models.Task    `json:"tasks"`
	Projects       []models.Project `json:"projects"`
	ExportDate     time.Time        `json:"exportDate"`
	TotalTasks     int              `json:"totalTasks"`
	TotalProjects  int              `json:"totalProjects"`
	CompletedTasks int              `json:"completedTasks"`
}

type tasksDoc struct {
	Tasks          []models.Task `json:"tasks"`
	ExportDate     time.Time     `json:"exportDate"`
	TotalTasks     int           `json:"totalTasks"`
	CompletedTasks int           `json:"completedTasks"`
}

type projectsDoc struct {
	Projects      []models.Project `json:"projects"`
	ExportDate    time.Time        `json:"exportDate"`
	TotalProjects int              `json:"totalProjects"`
}

type completedDoc struct {
	CompletedTasks []models.Task `json:"completedTasks"`
	ExportDate     time.Time     `json:"exportDate"`
	TotalCompleted int           `json:"totalCompleted"`
}

func writeJSON(w io.Writer, s models.State, scope Scope, now time.Time) error {
	s = nonNil(s)
	done := completed(s.Tasks)

	var doc any
	switch scope {
	case ScopeTasks:
		doc = tasksDoc{
			Tasks:          s.Tasks,
			ExportDate:     now.UTC(),
			TotalTasks:     len(s.Tasks),
			CompletedTasks: len(done),
		}
	case ScopeProjects:
		doc = projectsDoc{
			Projects:      s.Projects,
			ExportDate:    now.UTC(),
			TotalProjects: len(s.Projects),
		}
	case ScopeCompleted:
		doc = completedDoc{
			CompletedTasks: done,
			ExportDate:     now.UTC(),
			TotalCompleted: len(done),
		}
	default:
		doc = allDoc{
			Tasks:          s.Tasks,
			Projects:       s.Projects,
			ExportDate:     now.UTC(),
			TotalTasks:     len(s.Tasks),
			TotalProjects:  len(s.Projects),
			CompletedTasks: len(done),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func nonNil(s models.State) models.State {
	if s.Tasks == nil {
		s.Tasks = []models.Task{}
	}
	if s.Projects == nil {
		s.Projects = []models.Project{}
	}
	return s
}
