// Package board computes the read-only views of the board: filtered and
// sorted columns, due-date flags and statistics. Nothing here mutates state.
package board

import (
	"strconv"
	"strings"

	"github.com/tgienger/taskboard/internal/models"
)

// All is the "no filter" value for every filter field
const All = "all"

// None selects tasks without a project in Filters.Project
const None = "none"

// Filters narrow a column. Empty fields behave like All.
type Filters struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	Project  string `json:"project"`
}

// DefaultFilters shows every task
func DefaultFilters() Filters {
	return Filters{Category: All, Priority: All, Project: All}
}

// Active reports whether any filter narrows the board
func (f Filters) Active() bool {
	return strings.TrimSpace(f.Search) != "" ||
		!isAll(f.Category) || !isAll(f.Priority) || !isAll(f.Project)
}

func isAll(v string) bool {
	return v == "" || v == All
}

func matchCategory(t models.Task, category string) bool {
	return isAll(category) || t.Category == category
}

func matchPriority(t models.Task, priority string) bool {
	return isAll(priority) || string(t.Priority) == priority
}

// matchProject accepts All, None or a numeric project id. Ids are compared
// as numbers so "007" selects project 7.
func matchProject(t models.Task, project string) bool {
	switch {
	case isAll(project):
		return true
	case project == None:
		return !t.HasProject()
	}
	id, err := strconv.ParseInt(strings.TrimSpace(project), 10, 64)
	if err != nil {
		return false
	}
	return t.InProject(id)
}

// matchText is an OR of substrings: the task matches when the whole query,
// or any single word of it, occurs in any searchable field.
func matchText(s models.State, t models.Task, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}

	fields := searchFields(s, t)
	contains := func(needle string) bool {
		for _, f := range fields {
			if strings.Contains(f, needle) {
				return true
			}
		}
		return false
	}

	if contains(query) {
		return true
	}
	for _, word := range strings.Fields(query) {
		if contains(word) {
			return true
		}
	}
	return false
}

func searchFields(s models.State, t models.Task) []string {
	fields := []string{
		t.Title,
		t.Description,
		t.Assignee,
		string(t.Priority),
		t.DueDateString(),
		t.Category,
	}
	if p, ok := projectOf(s, t); ok {
		fields = append(fields, p.Name)
	}
	for i, f := range fields {
		fields[i] = strings.ToLower(f)
	}
	return fields
}
