// Package achievements defines the badge rules and announces newly earned
// badges.
package achievements

import (
	"time"

	"github.com/tgienger/taskboard/internal/models"
)

// Rule is one achievement: an id and a predicate over the board
type Rule struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Color       string
	Earned      func(s models.State, now time.Time) bool
}

// Rules is the canonical badge table, in display order
var Rules = []Rule{
	{
		ID: "firstTask", Name: "First Steps", Description: "Complete your first task",
		Icon: "🎯", Color: "#10b981",
		Earned: func(s models.State, _ time.Time) bool { return countDone(s, nil) >= 1 },
	},
	{
		ID: "taskMaster", Name: "Task Master", Description: "Complete 10 tasks",
		Icon: "👑", Color: "#f59e0b",
		Earned: func(s models.State, _ time.Time) bool { return countDone(s, nil) >= 10 },
	},
	{
		ID: "speedDemon", Name: "Speed Demon", Description: "Complete 5 tasks in one day",
		Icon: "⚡", Color: "#ef4444",
		Earned: func(s models.State, now time.Time) bool {
			return countDone(s, func(t models.Task) bool {
				return t.CompletedAt != nil && sameDay(*t.CompletedAt, now)
			}) >= 5
		},
	},
	{
		ID: "earlyBird", Name: "Early Bird", Description: "Complete a task before 9 AM",
		Icon: "🌅", Color: "#8b5cf6",
		Earned: func(s models.State, _ time.Time) bool {
			return countDone(s, func(t models.Task) bool {
				return t.CompletedAt != nil && t.CompletedAt.In(time.Local).Hour() < 9
			}) >= 1
		},
	},
	{
		ID: "nightOwl", Name: "Night Owl", Description: "Complete a task after 10 PM",
		Icon: "🦉", Color: "#6366f1",
		Earned: func(s models.State, _ time.Time) bool {
			return countDone(s, func(t models.Task) bool {
				return t.CompletedAt != nil && t.CompletedAt.In(time.Local).Hour() >= 22
			}) >= 1
		},
	},
	{
		ID: "projectManager", Name: "Project Manager", Description: "Create 3 projects",
		Icon: "📋", Color: "#06b6d4",
		Earned: func(s models.State, _ time.Time) bool { return len(s.Projects) >= 3 },
	},
	{
		ID: "perfectionist", Name: "Perfectionist", Description: "Complete 5 high-priority tasks",
		Icon: "💎", Color: "#ec4899",
		Earned: func(s models.State, _ time.Time) bool {
			return countDone(s, func(t models.Task) bool {
				return t.Priority == models.PriorityHigh
			}) >= 5
		},
	},
	{
		ID: "consistent", Name: "Consistent", Description: "Complete tasks for 7 consecutive days",
		Icon: "📅", Color: "#059669",
		Earned: func(s models.State, _ time.Time) bool { return longestStreak(s) >= 7 },
	},
}

// Lookup returns the rule with the given id
func Lookup(id string) (Rule, bool) {
	for _, r := range Rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// Result pairs a rule with its current outcome
type Result struct {
	Rule   Rule
	Earned bool
}

// Evaluate runs every rule against s
func Evaluate(s models.State, now time.Time) []Result {
	out := make([]Result, len(Rules))
	for i, r := range Rules {
		out[i] = Result{Rule: r, Earned: r.Earned(s, now)}
	}
	return out
}

// Earned returns only the rules s satisfies
func Earned(s models.State, now time.Time) []Rule {
	var out []Rule
	for _, r := range Evaluate(s, now) {
		if r.Earned {
			out = append(out, r.Rule)
		}
	}
	return out
}

func countDone(s models.State, pred func(models.Task) bool) int {
	n := 0
	for _, t := range s.Tasks {
		if t.Status != models.StatusDone {
			continue
		}
		if pred == nil || pred(t) {
			n++
		}
	}
	return n
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.In(time.Local).Date()
	by, bm, bd := b.In(time.Local).Date()
	return ay == by && am == bm && ad == bd
}

// longestStreak is the longest run of consecutive local calendar days with
// at least one completion.
func longestStreak(s models.State) int {
	days := make(map[time.Time]bool)
	for _, t := range s.Tasks {
		if t.Status != models.StatusDone || t.CompletedAt == nil {
			continue
		}
		days[models.Date(t.CompletedAt.In(time.Local).Date())] = true
	}

	best := 0
	for d := range days {
		// only count from the first day of a run
		if days[d.AddDate(0, 0, -1)] {
			continue
		}
		n := 1
		for next := d.AddDate(0, 0, 1); days[next]; next = next.AddDate(0, 0, 1) {
			n++
		}
		best = max(best, n)
	}
	return best
}
