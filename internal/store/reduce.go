package store

import (
	"slices"
	"time"

	"github.com/tgienger/taskboard/internal/models"
)

// Apply returns the state after cmd. It never mutates s: any collection
// that changes is copied. Malformed commands and unknown ids leave the state
// unchanged.
func Apply(s models.State, cmd Command, now time.Time) models.State {
	next, _ := reduce(s, cmd, now)
	return next
}

func reduce(s models.State, cmd Command, now time.Time) (models.State, bool) {
	if cmd == nil {
		return s, false
	}
	return cmd.apply(s, now)
}

// transition moves a task to another column. Every command that changes a
// status goes through it, so completedAt != nil iff status == Done holds
// whichever command changed the status.
func transition(t models.Task, to models.Status, now time.Time) models.Task {
	return t.MoveTo(to, now)
}

func projectIndex(s models.State, id int64) int {
	return slices.IndexFunc(s.Projects, func(p models.Project) bool { return p.ID == id })
}

func taskIndex(s models.State, id int64) int {
	return slices.IndexFunc(s.Tasks, func(t models.Task) bool { return t.ID == id })
}

// validTask checks the fields the store is responsible for: status and
// priority values, and that the project exists.
func validTask(s models.State, t models.Task) bool {
	if !t.Status.Valid() || !t.Priority.Valid() {
		return false
	}
	if t.ProjectID != nil && projectIndex(s, *t.ProjectID) < 0 {
		return false
	}
	return true
}

// dueDay drops the time of day from a due date; snapshots only keep the day
func dueDay(t models.Task) models.Task {
	if t.DueDate != nil {
		d := models.Day(*t.DueDate)
		t.DueDate = &d
	}
	return t
}

func replaceTask(s models.State, i int, t models.Task) models.State {
	tasks := slices.Clone(s.Tasks)
	tasks[i] = t
	return models.State{Projects: s.Projects, Tasks: tasks}
}

func (c AddProject) apply(s models.State, _ time.Time) (models.State, bool) {
	if c.Project.ID == 0 || projectIndex(s, c.Project.ID) >= 0 {
		return s, false
	}
	projects := append(slices.Clone(s.Projects), c.Project)
	return models.State{Projects: projects, Tasks: s.Tasks}, true
}

func (c EditProject) apply(s models.State, _ time.Time) (models.State, bool) {
	i := projectIndex(s, c.ID)
	if i < 0 {
		return s, false
	}

	old := s.Projects[i]
	p := old
	for _, update := range c.Updates {
		if update != nil {
			update(&p)
		}
	}
	p.ID = old.ID
	if p == old {
		return s, false
	}

	projects := slices.Clone(s.Projects)
	projects[i] = p
	return models.State{Projects: projects, Tasks: s.Tasks}, true
}

func (c DeleteProject) apply(s models.State, _ time.Time) (models.State, bool) {
	projects := slices.DeleteFunc(slices.Clone(s.Projects), func(p models.Project) bool {
		return p.ID == c.ID
	})
	tasks := slices.DeleteFunc(slices.Clone(s.Tasks), func(t models.Task) bool {
		return t.InProject(c.ID)
	})
	if len(projects) == len(s.Projects) && len(tasks) == len(s.Tasks) {
		return s, false
	}
	return models.State{Projects: projects, Tasks: tasks}, true
}

func (c AddTask) apply(s models.State, now time.Time) (models.State, bool) {
	t := c.Task
	if t.ID == 0 || taskIndex(s, t.ID) >= 0 {
		return s, false
	}
	if t.Status == "" {
		t.Status = models.StatusTodo
	}
	if t.ProjectID != nil && *t.ProjectID == 0 {
		t.ProjectID = nil
	}
	if !validTask(s, t) {
		return s, false
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t = dueDay(transition(t, t.Status, now))

	tasks := append(slices.Clone(s.Tasks), t)
	return models.State{Projects: s.Projects, Tasks: tasks}, true
}

func (c EditTask) apply(s models.State, now time.Time) (models.State, bool) {
	i := taskIndex(s, c.ID)
	if i < 0 {
		return s, false
	}

	old := s.Tasks[i]
	t := old
	for _, update := range c.Updates {
		if update != nil {
			update(&t)
		}
	}
	t.ID = old.ID
	t.CreatedAt = old.CreatedAt
	t.CompletedAt = old.CompletedAt
	if !validTask(s, t) {
		return s, false
	}
	t = dueDay(transition(t, t.Status, now))

	if sameTask(old, t) {
		return s, false
	}
	return replaceTask(s, i, t), true
}

func (c DeleteTask) apply(s models.State, _ time.Time) (models.State, bool) {
	i := taskIndex(s, c.ID)
	if i < 0 {
		return s, false
	}
	tasks := slices.Delete(slices.Clone(s.Tasks), i, i+1)
	return models.State{Projects: s.Projects, Tasks: tasks}, true
}

func (c UpdateTaskStatus) apply(s models.State, now time.Time) (models.State, bool) {
	if !c.Status.Valid() {
		return s, false
	}
	i := taskIndex(s, c.ID)
	if i < 0 {
		return s, false
	}

	old := s.Tasks[i]
	t := transition(old, c.Status, now)
	if sameTask(old, t) {
		return s, false
	}
	return replaceTask(s, i, t), true
}

func (c ToggleTask) apply(s models.State, now time.Time) (models.State, bool) {
	i := taskIndex(s, c.ID)
	if i < 0 {
		return s, false
	}

	old := s.Tasks[i]
	to := models.StatusDone
	if old.Status == models.StatusDone {
		to = models.StatusTodo
	}
	return replaceTask(s, i, transition(old, to, now)), true
}

func sameTask(a, b models.Task) bool {
	return a.ID == b.ID &&
		a.Title == b.Title &&
		a.Description == b.Description &&
		a.Assignee == b.Assignee &&
		a.Category == b.Category &&
		a.EstimatedTime == b.EstimatedTime &&
		a.Priority == b.Priority &&
		a.Status == b.Status &&
		sameID(a.ProjectID, b.ProjectID) &&
		sameTime(a.DueDate, b.DueDate) &&
		a.CreatedAt.Equal(b.CreatedAt) &&
		sameTime(a.CompletedAt, b.CompletedAt)
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
