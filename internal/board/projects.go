package board

import "github.com/tgienger/taskboard/internal/models"

// NoProject is returned by ResolveProject for unassigned tasks
var NoProject = models.Project{Name: "No Project"}

// ResolveProject returns the project t belongs to, or NoProject
func ResolveProject(t models.Task, s models.State) models.Project {
	if p, ok := projectOf(s, t); ok {
		return p
	}
	return NoProject
}

func projectOf(s models.State, t models.Task) (models.Project, bool) {
	if t.ProjectID == nil {
		return models.Project{}, false
	}
	return s.Project(*t.ProjectID)
}
