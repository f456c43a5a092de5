package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/taskboard/internal/models"
)

var (
	t0 = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
	t2 = t0.Add(2 * time.Hour)
)

func workState() models.State {
	s := models.Empty()
	s = Apply(s, AddProject{Project: models.Project{ID: 1, Name: "Work", Color: "#3b82f6"}}, t0)
	s = Apply(s, AddProject{Project: models.Project{ID: 2, Name: "Home"}}, t0)
	return s
}

func mustTask(t *testing.T, s models.State, id int64) models.Task {
	t.Helper()
	task, ok := s.Task(id)
	require.True(t, ok, "task %d not found", id)
	return task
}

func assertInvariant(t *testing.T, s models.State) {
	t.Helper()
	for _, task := range s.Tasks {
		assert.Equal(t, task.Status == models.StatusDone, task.CompletedAt != nil,
			"task %d: status %q completedAt %v", task.ID, task.Status, task.CompletedAt)
	}
}

func TestCompleteThenDeleteProject(t *testing.T) {
	s := workState()
	s = Apply(s, AddTask{Task: models.Task{ID: 10, Title: "X", Status: models.StatusTodo, ProjectID: models.Int64(1)}}, t0)

	s = Apply(s, UpdateTaskStatus{ID: 10, Status: models.StatusDone}, t1)
	task := mustTask(t, s, 10)
	assert.Equal(t, models.StatusDone, task.Status)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, t1, *task.CompletedAt)

	s = Apply(s, DeleteProject{ID: 1}, t2)
	_, ok := s.Project(1)
	assert.False(t, ok)
	_, ok = s.Task(10)
	assert.False(t, ok)
}

func TestDeleteProjectCascade(t *testing.T) {
	s := workState()
	s = Apply(s, AddTask{Task: models.Task{ID: 10, Title: "a", ProjectID: models.Int64(1)}}, t0)
	s = Apply(s, AddTask{Task: models.Task{ID: 11, Title: "b", ProjectID: models.Int64(2)}}, t0)
	s = Apply(s, AddTask{Task: models.Task{ID: 12, Title: "c"}}, t0)
	s = Apply(s, AddTask{Task: models.Task{ID: 13, Title: "d", ProjectID: models.Int64(1)}}, t0)

	before := s
	after := Apply(s, DeleteProject{ID: 1}, t1)

	require.Len(t, after.Projects, 1)
	assert.Equal(t, int64(2), after.Projects[0].ID)

	var ids []int64
	for _, task := range after.Tasks {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []int64{11, 12}, ids)

	// input untouched
	assert.Len(t, before.Projects, 2)
	assert.Len(t, before.Tasks, 4)
}

func TestUpdateStatusIdempotent(t *testing.T) {
	s := workState()
	s = Apply(s, AddTask{Task: models.Task{ID: 10, Title: "X"}}, t0)

	once := Apply(s, UpdateTaskStatus{ID: 10, Status: models.StatusDone}, t1)
	twice := Apply(once, UpdateTaskStatus{ID: 10, Status: models.StatusDone}, t2)

	assert.Equal(t, *mustTask(t, once, 10).CompletedAt, *mustTask(t, twice, 10).CompletedAt)
	assert.Equal(t, t1, *mustTask(t, twice, 10).CompletedAt)
}

func TestToggle(t *testing.T) {
	s := workState()
	s = Apply(s, AddTask{Task: models.Task{ID: 10, Title: "X", Status: models.StatusInProgress}}, t0)

	s = Apply(s, ToggleTask{ID: 10}, t1)
	task := mustTask(t, s, 10)
	assert.Equal(t, models.StatusDone, task.Status)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, t1, *task.CompletedAt)

	s = Apply(s, ToggleTask{ID: 10}, t2)
	task = mustTask(t, s, 10)
	assert.Equal(t, models.StatusTodo, task.Status)
	assert.Nil(t, task.CompletedAt)
}

func TestEditTaskStatusKeepsInvariant(t *testing.T) {
	s := workState()
	s = Apply(s, AddTask{Task: models.Task{ID: 10, Title: "X"}}, t0)

	s = Apply(s, EditTask{ID: 10, Updates: []TaskUpdate{WithStatus(models.StatusDone)}}, t1)
	task := mustTask(t, s, 10)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, t1, *task.CompletedAt)

	// editing another field keeps the completion time
	s = Apply(s, EditTask{ID: 10, Updates: []TaskUpdate{WithTitle("Y")}}, t2)
	task = mustTask(t, s, 10)
	assert.Equal(t, "Y", task.Title)
	assert.Equal(t, t1, *task.CompletedAt)

	s = Apply(s, EditTask{ID: 10, Updates: []TaskUpdate{WithStatus(models.StatusInProgress)}}, t2)
	task = mustTask(t, s, 10)
	assert.Equal(t, models.StatusInProgress, task.Status)
	assert.Nil(t, task.CompletedAt)
}

func TestInvariantAfterCommandSequence(t *testing.T) {
	s := workState()
	s = Apply(s, AddTask{Task: models.Task{ID: 10, Title: "a"}}, t0)
	s = Apply(s, AddTask{Task: models.Task{ID: 11, Title: "b", Status: models.StatusDone}}, t0)
	s = Apply(s, AddTask{Task: models.Task{ID: 12, Title: "c", Status: models.StatusTodo, CompletedAt: &t0}}, t0)
	assertInvariant(t, s)

	cmds := []Command{
		ToggleTask{ID: 10},
		UpdateTaskStatus{ID: 11, Status: models.StatusInProgress},
		EditTask{ID: 12, Updates: []TaskUpdate{WithStatus(models.StatusDone)}},
		ToggleTask{ID: 12},
		UpdateTaskStatus{ID: 10, Status: models.StatusTodo},
		EditTask{ID: 11, Updates: []TaskUpdate{WithStatus(models.StatusDone), WithPriority(models.PriorityHigh)}},
		ToggleTask{ID: 11},
		ToggleTask{ID: 11},
	}
	for i, cmd := range cmds {
		s = Apply(s, cmd, t0.Add(time.Duration(i)*time.Minute))
		assertInvariant(t, s)
	}
}

func TestAddTaskDefaults(t *testing.T) {
	s := Apply(workState(), AddTask{Task: models.Task{ID: 10, Title: "X"}}, t1)
	task := mustTask(t, s, 10)

	assert.Equal(t, models.StatusTodo, task.Status)
	assert.Equal(t, t1, task.CreatedAt)
	assert.Nil(t, task.CompletedAt)
	assert.False(t, task.HasProject())
}

func TestAddTaskDoneKeepsGivenCompletion(t *testing.T) {
	s := Apply(workState(), AddTask{Task: models.Task{ID: 10, Title: "X", Status: models.StatusDone, CreatedAt: t0, CompletedAt: &t0}}, t2)
	task := mustTask(t, s, 10)
	assert.Equal(t, t0, task.CreatedAt)
	assert.Equal(t, t0, *task.CompletedAt)
}

func TestAddTaskZeroProjectMeansNone(t *testing.T) {
	s := Apply(workState(), AddTask{Task: models.Task{ID: 10, Title: "X", ProjectID: models.Int64(0)}}, t0)
	assert.False(t, mustTask(t, s, 10).HasProject())
}

func TestMalformedCommandsAreNoOps(t *testing.T) {
	s := workState()
	s = Apply(s, AddTask{Task: models.Task{ID: 10, Title: "X", ProjectID: models.Int64(1)}}, t0)

	tests := []struct {
		name string
		cmd  Command
	}{
		{"nil command", nil},
		{"project without id", AddProject{Project: models.Project{Name: "x"}}},
		{"duplicate project", AddProject{Project: models.Project{ID: 1, Name: "again"}}},
		{"edit missing project", EditProject{ID: 99, Updates: []ProjectUpdate{WithName("x")}}},
		{"edit project without change", EditProject{ID: 1, Updates: []ProjectUpdate{WithName("Work")}}},
		{"delete missing project", DeleteProject{ID: 99}},
		{"task without id", AddTask{Task: models.Task{Title: "x"}}},
		{"duplicate task", AddTask{Task: models.Task{ID: 10, Title: "again"}}},
		{"dangling project", AddTask{Task: models.Task{ID: 11, Title: "x", ProjectID: models.Int64(99)}}},
		{"invalid status", AddTask{Task: models.Task{ID: 11, Title: "x", Status: "Blocked"}}},
		{"invalid priority", AddTask{Task: models.Task{ID: 11, Title: "x", Priority: "Urgent"}}},
		{"edit missing task", EditTask{ID: 99, Updates: []TaskUpdate{WithTitle("x")}}},
		{"edit to invalid status", EditTask{ID: 10, Updates: []TaskUpdate{WithStatus("Blocked")}}},
		{"edit to dangling project", EditTask{ID: 10, Updates: []TaskUpdate{WithProject(models.Int64(99))}}},
		{"edit without updates", EditTask{ID: 10}},
		{"nil update", EditTask{ID: 10, Updates: []TaskUpdate{nil}}},
		{"delete missing task", DeleteTask{ID: 99}},
		{"status of missing task", UpdateTaskStatus{ID: 99, Status: models.StatusDone}},
		{"invalid status update", UpdateTaskStatus{ID: 10, Status: "Archived"}},
		{"same status", UpdateTaskStatus{ID: 10, Status: models.StatusTodo}},
		{"toggle missing task", ToggleTask{ID: 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, changed := reduce(s, tt.cmd, t1)
			assert.False(t, changed)
			assert.Equal(t, s, next)
		})
	}
}

func TestEditTaskCannotChangeIdentity(t *testing.T) {
	s := Apply(workState(), AddTask{Task: models.Task{ID: 10, Title: "X"}}, t0)

	sneaky := func(task *models.Task) {
		task.ID = 77
		task.CreatedAt = t2
		task.CompletedAt = &t2
		task.Title = "renamed"
	}
	s = Apply(s, EditTask{ID: 10, Updates: []TaskUpdate{sneaky}}, t1)

	task := mustTask(t, s, 10)
	assert.Equal(t, "renamed", task.Title)
	assert.Equal(t, t0, task.CreatedAt)
	assert.Nil(t, task.CompletedAt)
	_, ok := s.Task(77)
	assert.False(t, ok)
}

func TestEditTaskFields(t *testing.T) {
	s := Apply(workState(), AddTask{Task: models.Task{ID: 10, Title: "X", ProjectID: models.Int64(1)}}, t0)
	due := models.Date(2024, 7, 1)

	s = Apply(s, EditTask{ID: 10, Updates: []TaskUpdate{
		WithDescription("desc"),
		WithAssignee("sam"),
		WithCategory("Work"),
		WithEstimatedTime("2h"),
		WithPriority(models.PriorityMedium),
		WithDueDate(&due),
		WithProject(models.Int64(2)),
	}}, t1)

	task := mustTask(t, s, 10)
	assert.Equal(t, "desc", task.Description)
	assert.Equal(t, "sam", task.Assignee)
	assert.Equal(t, "Work", task.Category)
	assert.Equal(t, "2h", task.EstimatedTime)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, "2024-07-01", task.DueDateString())
	assert.True(t, task.InProject(2))

	s = Apply(s, EditTask{ID: 10, Updates: []TaskUpdate{WithDueDate(nil), WithProject(nil)}}, t2)
	task = mustTask(t, s, 10)
	assert.Nil(t, task.DueDate)
	assert.False(t, task.HasProject())
}

func TestEditProject(t *testing.T) {
	s := workState()
	next := Apply(s, EditProject{ID: 1, Updates: []ProjectUpdate{
		WithName("Office"),
		WithProjectDescription("9 to 5"),
		WithColor("#ef4444"),
		func(p *models.Project) { p.ID = 5 },
	}}, t1)

	p, ok := next.Project(1)
	require.True(t, ok)
	assert.Equal(t, models.Project{ID: 1, Name: "Office", Description: "9 to 5", Color: "#ef4444"}, p)

	old, _ := s.Project(1)
	assert.Equal(t, "Work", old.Name)
}

func TestDeleteTask(t *testing.T) {
	s := workState()
	s = Apply(s, AddTask{Task: models.Task{ID: 10, Title: "a"}}, t0)
	s = Apply(s, AddTask{Task: models.Task{ID: 11, Title: "b"}}, t0)

	next := Apply(s, DeleteTask{ID: 10}, t1)
	require.Len(t, next.Tasks, 1)
	assert.Equal(t, int64(11), next.Tasks[0].ID)
	assert.Len(t, s.Tasks, 2)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	s := workState()
	s = Apply(s, AddTask{Task: models.Task{ID: 10, Title: "X"}}, t0)
	snapshot := mustTask(t, s, 10)

	_ = Apply(s, UpdateTaskStatus{ID: 10, Status: models.StatusDone}, t1)
	_ = Apply(s, EditTask{ID: 10, Updates: []TaskUpdate{WithTitle("changed")}}, t1)

	assert.Equal(t, snapshot, mustTask(t, s, 10))
}

func TestCommandNames(t *testing.T) {
	assert.Equal(t, "ADD_PROJECT", AddProject{}.Name())
	assert.Equal(t, "EDIT_PROJECT", EditProject{}.Name())
	assert.Equal(t, "DELETE_PROJECT", DeleteProject{}.Name())
	assert.Equal(t, "ADD_TASK", AddTask{}.Name())
	assert.Equal(t, "EDIT_TASK", EditTask{}.Name())
	assert.Equal(t, "DELETE_TASK", DeleteTask{}.Name())
	assert.Equal(t, "UPDATE_TASK_STATUS", UpdateTaskStatus{}.Name())
	assert.Equal(t, "TOGGLE_TASK", ToggleTask{}.Name())
}
