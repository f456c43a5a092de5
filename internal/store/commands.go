// Package store holds the canonical board state. Every change goes through a
// Command applied by Apply; Store wraps that with persistence and events.
package store

import (
	"time"

	"github.com/tgienger/taskboard/internal/models"
)

// Command is a request to change the board state
type Command interface {
	// Name is the command's wire name, e.g. ADD_TASK
	Name() string
	apply(s models.State, now time.Time) (models.State, bool)
}

type AddProject struct {
	Project models.Project
}

type EditProject struct {
	ID      int64
	Updates []ProjectUpdate
}

// DeleteProject removes the project and every task assigned to it
type DeleteProject struct {
	ID int64
}

type AddTask struct {
	Task models.Task
}

type EditTask struct {
	ID      int64
	Updates []TaskUpdate
}

type DeleteTask struct {
	ID int64
}

type UpdateTaskStatus struct {
	ID     int64
	Status models.Status
}

// ToggleTask flips a task between Done and To Do
type ToggleTask struct {
	ID int64
}

func (AddProject) Name() string       { return "ADD_PROJECT" }
func (EditProject) Name() string      { return "EDIT_PROJECT" }
func (DeleteProject) Name() string    { return "DELETE_PROJECT" }
func (AddTask) Name() string          { return "ADD_TASK" }
func (EditTask) Name() string         { return "EDIT_TASK" }
func (DeleteTask) Name() string       { return "DELETE_TASK" }
func (UpdateTaskStatus) Name() string { return "UPDATE_TASK_STATUS" }
func (ToggleTask) Name() string       { return "TOGGLE_TASK" }
