// Package templates holds the built-in task templates
package templates

import (
	"errors"
	"fmt"
	"time"

	"github.com/tgienger/taskboard/internal/models"
	"github.com/tgienger/taskboard/internal/store"
)

var ErrUnknownTemplate = errors.New("unknown template")

// Item is one task of a template
type Item struct {
	Title         string
	Category      string
	Priority      models.Priority
	EstimatedTime string
}

type Template struct {
	Name  string
	Items []Item
}

var Builtin = []Template{
	{"Daily Routine", []Item{
		{"Morning Exercise", "health", models.PriorityHigh, "0.5"},
		{"Check Emails", "work", models.PriorityMedium, "0.25"},
		{"Plan Day", "work", models.PriorityHigh, "0.25"},
		{"Drink Water", "health", models.PriorityMedium, "0.1"},
	}},
	{"Weekly Planning", []Item{
		{"Review Last Week", "work", models.PriorityHigh, "1"},
		{"Set Weekly Goals", "work", models.PriorityHigh, "0.5"},
		{"Plan Meals", "personal", models.PriorityMedium, "0.5"},
		{"Schedule Exercise", "health", models.PriorityMedium, "0.25"},
	}},
	{"Project Setup", []Item{
		{"Define Requirements", "work", models.PriorityHigh, "2"},
		{"Create Timeline", "work", models.PriorityHigh, "1"},
		{"Assign Tasks", "work", models.PriorityMedium, "0.5"},
		{"Set Milestones", "work", models.PriorityMedium, "0.5"},
	}},
	{"Learning Session", []Item{
		{"Research Topic", "learning", models.PriorityHigh, "1"},
		{"Take Notes", "learning", models.PriorityMedium, "0.5"},
		{"Practice Exercise", "learning", models.PriorityMedium, "1"},
		{"Review & Reflect", "learning", models.PriorityLow, "0.25"},
	}},
	{"Financial Planning", []Item{
		{"Review Budget", "finance", models.PriorityHigh, "0.5"},
		{"Pay Bills", "finance", models.PriorityHigh, "0.25"},
		{"Update Expenses", "finance", models.PriorityMedium, "0.25"},
		{"Plan Savings", "finance", models.PriorityMedium, "0.5"},
	}},
}

// Names returns the template names in display order
func Names() []string {
	names := make([]string, len(Builtin))
	for i, t := range Builtin {
		names[i] = t.Name
	}
	return names
}

func Get(name string) (Template, error) {
	for _, t := range Builtin {
		if t.Name == name {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
}

// Commands returns one AddTask per template item. Each task gets an id from
// ids and starts in To Do without a project.
func Commands(name string, ids func() int64, now time.Time) ([]store.Command, error) {
	t, err := Get(name)
	if err != nil {
		return nil, err
	}

	cmds := make([]store.Command, 0, len(t.Items))
	for _, item := range t.Items {
		cmds = append(cmds, store.AddTask{Task: models.Task{
			ID:            ids(),
			Title:         item.Title,
			Description:   "Template task from " + t.Name,
			Category:      item.Category,
			EstimatedTime: item.EstimatedTime,
			Priority:      item.Priority,
			Status:        models.StatusTodo,
			CreatedAt:     now,
		}})
	}
	return cmds, nil
}
