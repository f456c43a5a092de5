// Package export renders the board as JSON, CSV or a plain-text report.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tgienger/taskboard/internal/models"
)

var (
	ErrUnknownFormat = errors.New("unknown export format")
	ErrUnknownScope  = errors.New("unknown export scope")
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "txt"
)

// Formats lists the supported formats
var Formats = []Format{FormatJSON, FormatCSV, FormatText}

// Scope selects what part of the board is exported
type Scope string

const (
	ScopeAll       Scope = "all"
	ScopeTasks     Scope = "tasks"
	ScopeProjects  Scope = "projects"
	ScopeCompleted Scope = "completed"
)

var Scopes = []Scope{ScopeAll, ScopeTasks, ScopeProjects, ScopeCompleted}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "text" {
		f = FormatText
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func ParseScope(s string) (Scope, error) {
	sc := Scope(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Scopes {
		if sc == known {
			return sc, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScope, s)
}

// Write renders s in format, limited to scope
func Write(w io.Writer, s models.State, format Format, scope Scope, now time.Time) error {
	if _, err := ParseScope(string(scope)); err != nil {
		return err
	}
	switch format {
	case FormatJSON:
		return writeJSON(w, s, scope, now)
	case FormatCSV:
		return writeCSV(w, s, scope)
	case FormatText:
		return writeText(w, s, scope, now)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Filename is the suggested file name for an export made at now
func Filename(format Format, scope Scope, now time.Time) string {
	date := now.Format(models.DateLayout)
	switch format {
	case FormatCSV:
		if scope == ScopeProjects {
			return fmt.Sprintf("taskboard-export-%s.txt", date)
		}
		return fmt.Sprintf("taskboard-tasks-%s.csv", date)
	case FormatText:
		return fmt.Sprintf("taskboard-export-%s.txt", date)
	}
	return fmt.Sprintf("taskboard-export-%s.json", date)
}

// tasksIn returns the tasks a scope covers
func tasksIn(s models.State, scope Scope) []models.Task {
	switch scope {
	case ScopeProjects:
		return nil
	case ScopeCompleted:
		return completed(s.Tasks)
	}
	return s.Tasks
}

func completed(tasks []models.Task) []models.Task {
	out := make([]models.Task, 0)
	for _, t := range tasks {
		if t.Status == models.StatusDone {
			out = append(out, t)
		}
	}
	return out
}

func projectName(s models.State, t models.Task) string {
	if t.ProjectID == nil {
		return ""
	}
	p, ok := s.Project(*t.ProjectID)
	if !ok {
		return ""
	}
	return p.Name
}

func timestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
