package views

import "github.com/tgienger/taskboard/internal/models"

// BackToBoard closes the current panel
type BackToBoard struct{}

type OpenProjects struct{}

type OpenTemplates struct{}

type OpenAchievements struct{}

// OpenTaskForm opens the task form. A nil Task means a new task in Status.
type OpenTaskForm struct {
	Task   *models.Task
	Status models.Status
}

// SelectedProject narrows the board to one project
type SelectedProject struct {
	Project models.Project
}

type ToggleTheme struct{}

// Notice is shown as a toast
type Notice struct {
	Text string
}
