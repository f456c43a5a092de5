package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// taskJSON is the persisted shape of a task. Field names follow the snapshot
// format written by earlier versions of the board, so old snapshots load.
type taskJSON struct {
	ID            json.RawMessage `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Assignee      string          `json:"assignee,omitempty"`
	Category      string          `json:"category,omitempty"`
	EstimatedTime json.RawMessage `json:"estimatedTime,omitempty"`
	Priority      Priority        `json:"priority,omitempty"`
	Status        Status          `json:"status"`
	ProjectID     json.RawMessage `json:"projectId"`
	DueDate       string          `json:"dueDate,omitempty"`
	CreatedAt     *time.Time      `json:"createdAt,omitempty"`
	CompletedAt   *time.Time      `json:"completedAt"`
}

// MarshalJSON writes the due date as YYYY-MM-DD and a null projectId for
// tasks without a project.
func (t Task) MarshalJSON() ([]byte, error) {
	out := taskJSON{
		ID:          json.RawMessage(strconv.FormatInt(t.ID, 10)),
		Title:       t.Title,
		Description: t.Description,
		Assignee:    t.Assignee,
		Category:    t.Category,
		Priority:    t.Priority,
		Status:      t.Status,
		ProjectID:   json.RawMessage("null"),
		DueDate:     t.DueDateString(),
		CompletedAt: t.CompletedAt,
	}
	if t.EstimatedTime != "" {
		est, err := json.Marshal(t.EstimatedTime)
		if err != nil {
			return nil, err
		}
		out.EstimatedTime = est
	}
	if t.ProjectID != nil {
		out.ProjectID = json.RawMessage(strconv.FormatInt(*t.ProjectID, 10))
	}
	if !t.CreatedAt.IsZero() {
		created := t.CreatedAt
		out.CreatedAt = &created
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts numeric or string ids, "", 0 or null for "no
// project", and due dates either as YYYY-MM-DD or RFC 3339.
func (t *Task) UnmarshalJSON(data []byte) error {
	var in taskJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	id, err := coerceID(in.ID)
	if err != nil {
		return fmt.Errorf("task id: %w", err)
	}
	if id == nil {
		return fmt.Errorf("task id: missing")
	}

	projectID, err := coerceID(in.ProjectID)
	if err != nil {
		return fmt.Errorf("task %d projectId: %w", *id, err)
	}
	if projectID != nil && *projectID == 0 {
		projectID = nil
	}

	due, err := parseDueDate(in.DueDate)
	if err != nil {
		return fmt.Errorf("task %d dueDate: %w", *id, err)
	}

	est, err := coerceString(in.EstimatedTime)
	if err != nil {
		return fmt.Errorf("task %d estimatedTime: %w", *id, err)
	}

	*t = Task{
		ID:            *id,
		Title:         in.Title,
		Description:   in.Description,
		Assignee:      in.Assignee,
		Category:      in.Category,
		EstimatedTime: est,
		Priority:      in.Priority,
		Status:        in.Status,
		ProjectID:     projectID,
		DueDate:       due,
		CompletedAt:   in.CompletedAt,
	}
	if in.CreatedAt != nil {
		t.CreatedAt = *in.CreatedAt
	}
	return nil
}

type projectJSON struct {
	ID          json.RawMessage `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Color       string          `json:"color,omitempty"`
}

// UnmarshalJSON accepts numeric or numeric-string ids
func (p *Project) UnmarshalJSON(data []byte) error {
	var in projectJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	id, err := coerceID(in.ID)
	if err != nil {
		return fmt.Errorf("project id: %w", err)
	}
	if id == nil {
		return fmt.Errorf("project id: missing")
	}
	*p = Project{ID: *id, Name: in.Name, Description: in.Description, Color: in.Color}
	return nil
}

// coerceID turns a JSON number, numeric string, "" or null into an id.
// Blank values yield nil.
func coerceID(raw json.RawMessage) (*int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
	} else {
		s = string(raw)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &id, nil
	}
	// Timestamp ids may have been written as floats
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) >= 1<<63 {
		return nil, fmt.Errorf("not an integer id: %q", s)
	}
	id := int64(f)
	return &id, nil
}

func coerceString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	return string(raw), nil
}

func parseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if d, err := ParseDate(s); err == nil {
		return &d, nil
	}
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	day := Day(d)
	return &day, nil
}
