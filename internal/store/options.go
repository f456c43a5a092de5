package store

import (
	"time"

	"github.com/tgienger/taskboard/internal/models"
)

// TaskUpdate changes one field of a task in an EditTask command
type TaskUpdate func(*models.Task)

func WithTitle(title string) TaskUpdate {
	return func(t *models.Task) {
		t.Title = title
	}
}

func WithDescription(description string) TaskUpdate {
	return func(t *models.Task) {
		t.Description = description
	}
}

func WithAssignee(assignee string) TaskUpdate {
	return func(t *models.Task) {
		t.Assignee = assignee
	}
}

func WithCategory(category string) TaskUpdate {
	return func(t *models.Task) {
		t.Category = category
	}
}

func WithEstimatedTime(estimate string) TaskUpdate {
	return func(t *models.Task) {
		t.EstimatedTime = estimate
	}
}

func WithPriority(p models.Priority) TaskUpdate {
	return func(t *models.Task) {
		t.Priority = p
	}
}

// WithStatus changes the column. completedAt follows the same rules as
// UpdateTaskStatus.
func WithStatus(s models.Status) TaskUpdate {
	return func(t *models.Task) {
		t.Status = s
	}
}

// WithDueDate sets the due date, truncated to its local calendar day; nil
// clears it
func WithDueDate(due *time.Time) TaskUpdate {
	return func(t *models.Task) {
		if due == nil {
			t.DueDate = nil
			return
		}
		d := models.Day(*due)
		t.DueDate = &d
	}
}

// WithProject moves the task to a project; nil means no project
func WithProject(id *int64) TaskUpdate {
	return func(t *models.Task) {
		if id == nil || *id == 0 {
			t.ProjectID = nil
			return
		}
		t.ProjectID = models.Int64(*id)
	}
}

// ProjectUpdate changes one field of a project in an EditProject command
type ProjectUpdate func(*models.Project)

func WithName(name string) ProjectUpdate {
	return func(p *models.Project) {
		p.Name = name
	}
}

func WithProjectDescription(description string) ProjectUpdate {
	return func(p *models.Project) {
		p.Description = description
	}
}

func WithColor(color string) ProjectUpdate {
	return func(p *models.Project) {
		p.Color = color
	}
}
