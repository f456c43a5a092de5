package models

import (
	"time"
)

// Status is the board column a task lives in
type Status string

const (
	StatusTodo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Statuses lists the board columns in display order
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the three board columns
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Priority of a task. The empty priority means "missing".
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists the known priorities from highest to lowest
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is a known priority or missing
func (p Priority) Valid() bool {
	switch p {
	case "", PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Weight is used for sorting: High=3, Medium=2, Low=1, missing=0
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// DateLayout is the wire and display format of due dates
const DateLayout = "2006-01-02"

// Project represents a task management project
type Project struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// Task represents a single task on the board
type Task struct {
	ID            int64
	Title         string
	Description   string
	Assignee      string
	Category      string
	EstimatedTime string
	Priority      Priority
	Status        Status
	ProjectID     *int64 // nil means "no project"
	DueDate       *time.Time
	CreatedAt     time.Time
	CompletedAt   *time.Time // non-nil iff Status == StatusDone
}

// HasProject reports whether the task is assigned to a project
func (t Task) HasProject() bool {
	return t.ProjectID != nil
}

// InProject reports whether the task belongs to project id
func (t Task) InProject(id int64) bool {
	return t.ProjectID != nil && *t.ProjectID == id
}

// MoveTo returns t in column to. CompletedAt is stamped with now when the
// task enters Done and cleared when it is anywhere else, so it is non-nil
// iff Status == StatusDone. An existing stamp on a Done task is kept.
func (t Task) MoveTo(to Status, now time.Time) Task {
	t.Status = to
	if to != StatusDone {
		t.CompletedAt = nil
		return t
	}
	if t.CompletedAt == nil {
		done := now
		t.CompletedAt = &done
	}
	return t
}

// DueDateString returns the due date as YYYY-MM-DD, or "" when unset
func (t Task) DueDateString() string {
	if t.DueDate == nil {
		return ""
	}
	return t.DueDate.Format(DateLayout)
}

// State is the canonical board content
type State struct {
	Projects []Project `json:"projects"`
	Tasks    []Task    `json:"tasks"`
}

// Empty returns the initial state with non-nil collections
func Empty() State {
	return State{Projects: []Project{}, Tasks: []Task{}}
}

// Project returns the project with the given id
func (s State) Project(id int64) (Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// Task returns the task with the given id
func (s State) Task(id int64) (Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Int64 returns a pointer to v, for optional ids
func Int64(v int64) *int64 {
	return &v
}

// Date returns midnight local time of the given calendar day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// Day truncates v to midnight local time of its calendar day
func Day(v time.Time) time.Time {
	return Date(v.In(time.Local).Date())
}

// ParseDate parses a YYYY-MM-DD due date in local time
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}
