package views

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/taskboard/internal/board"
	"github.com/tgienger/taskboard/internal/models"
	"github.com/tgienger/taskboard/internal/persist"
	"github.com/tgienger/taskboard/internal/store"
)

var testNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)

func testEnv(t *testing.T) Env {
	t.Helper()
	backing := persist.NewMemoryBacking()
	clock := func() time.Time { return testNow }
	return Env{
		Store: store.New(backing, nil, store.WithClock(clock)),
		Prefs: persist.NewPreferences(backing),
		Now:   clock,
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(runes(string(r)))
	}
	return m
}

func seed(env Env) {
	env.Store.Dispatch(store.AddProject{Project: models.Project{ID: 1, Name: "Work", Color: ProjectColors[0]}})
	env.Store.Dispatch(store.AddTask{Task: models.Task{ID: 10, Title: "Write report", Priority: models.PriorityHigh, ProjectID: models.Int64(1)}})
	env.Store.Dispatch(store.AddTask{Task: models.Task{ID: 11, Title: "Buy milk", Priority: models.PriorityLow}})
}

func TestTaskFormRequiresTitle(t *testing.T) {
	env := testEnv(t)
	f := NewTaskForm(env, nil, models.StatusTodo, nil)

	_, err := f.Command()
	assert.ErrorIs(t, err, errTitleRequired)

	f.SetValue(fieldTitle, "   ")
	_, err = f.Command()
	assert.ErrorIs(t, err, errTitleRequired)
}

func TestTaskFormRejectsBadDueDate(t *testing.T) {
	env := testEnv(t)
	f := NewTaskForm(env, nil, models.StatusTodo, nil)
	f.SetValue(fieldTitle, "Plan")
	f.SetValue(fieldDue, "next week")

	_, err := f.Command()
	assert.ErrorIs(t, err, errBadDueDate)

	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.ErrorIs(t, f.Err(), errBadDueDate)
	assert.Empty(t, env.Store.State().Tasks)
}

func TestTaskFormCreatesTask(t *testing.T) {
	env := testEnv(t)
	seed(env)

	f := NewTaskForm(env, nil, models.StatusInProgress, models.Int64(1))
	f.SetValue(fieldTitle, "  Review PR ")
	f.SetValue(fieldAssignee, "sam")
	f.SetValue(fieldDue, "2024-06-12")

	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.Equal(t, BackToBoard{}, cmd())

	tasks := env.Store.State().Tasks
	require.Len(t, tasks, 3)
	got := tasks[2]
	assert.Equal(t, "Review PR", got.Title)
	assert.Equal(t, "sam", got.Assignee)
	assert.Equal(t, models.StatusInProgress, got.Status)
	assert.Equal(t, models.PriorityMedium, got.Priority)
	assert.True(t, got.InProject(1))
	assert.Equal(t, "2024-06-12", got.DueDateString())
	assert.Equal(t, testNow, got.CreatedAt)
	assert.Nil(t, got.CompletedAt)
}

func TestTaskFormEditsTask(t *testing.T) {
	env := testEnv(t)
	seed(env)
	task, ok := env.Store.State().Task(10)
	require.True(t, ok)

	f := NewTaskForm(env, &task, task.Status, nil)
	f.SetValue(fieldTitle, "Write final report")

	// Move focus to the status selector and pick Done
	for range fieldStatus {
		f.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	f.Update(runes("l"))
	f.Update(runes("l"))

	cmd, err := f.Command()
	require.NoError(t, err)
	assert.IsType(t, store.EditTask{}, cmd)
	env.Store.Dispatch(cmd)

	got, _ := env.Store.State().Task(10)
	assert.Equal(t, "Write final report", got.Title)
	assert.Equal(t, models.StatusDone, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.InProject(1))
	assert.Equal(t, models.PriorityHigh, got.Priority)
}

func TestBoardMovesTaskBetweenColumns(t *testing.T) {
	env := testEnv(t)
	seed(env)
	v := NewBoardView(env)
	v.Update(tea.WindowSizeMsg{Width: 140, Height: 40})

	sel, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, int64(10), sel.ID, "high priority first")

	v.Update(runes("]"))
	got, _ := env.Store.State().Task(10)
	assert.Equal(t, models.StatusInProgress, got.Status)

	sel, ok = v.Selected()
	require.True(t, ok)
	assert.Equal(t, int64(10), sel.ID, "cursor follows the card")

	v.Update(runes("]"))
	got, _ = env.Store.State().Task(10)
	assert.Equal(t, models.StatusDone, got.Status)
	assert.NotNil(t, got.CompletedAt)

	// Already in the last column
	v.Update(runes("]"))
	got, _ = env.Store.State().Task(10)
	assert.Equal(t, models.StatusDone, got.Status)

	assert.Contains(t, v.View(), "Write report")
}

func TestBoardDeleteNeedsConfirmation(t *testing.T) {
	env := testEnv(t)
	seed(env)
	v := NewBoardView(env)

	v.Update(runes("d"))
	v.Update(runes("n"))
	assert.Len(t, env.Store.State().Tasks, 2)

	v.Update(runes("d"))
	v.Update(runes("y"))
	assert.Len(t, env.Store.State().Tasks, 1)
	_, ok := env.Store.State().Task(10)
	assert.False(t, ok)
}

func TestBoardFiltersArePersisted(t *testing.T) {
	env := testEnv(t)
	seed(env)
	v := NewBoardView(env)

	v.Update(runes("p"))
	assert.Equal(t, "High", v.Filters().Priority)
	assert.Len(t, v.Column(), 1)

	restored := NewBoardView(env)
	assert.Equal(t, "High", restored.Filters().Priority)

	restored.Update(runes("x"))
	assert.Equal(t, board.DefaultFilters(), restored.Filters())
	assert.Len(t, restored.Column(), 2)
}

func TestBoardSearch(t *testing.T) {
	env := testEnv(t)
	seed(env)
	v := NewBoardView(env)

	var m tea.Model = v
	m, _ = m.Update(runes("/"))
	m = typeText(m, "milk")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "milk", v.Filters().Search)
	require.Len(t, v.Column(), 1)
	assert.Equal(t, int64(11), v.Column()[0].ID)
}

func TestBoardOpensPanels(t *testing.T) {
	env := testEnv(t)
	v := NewBoardView(env)

	for k, want := range map[string]tea.Msg{
		"n": OpenTaskForm{Status: models.StatusTodo},
		"P": OpenProjects{},
		"T": OpenTemplates{},
		"a": OpenAchievements{},
		"D": ToggleTheme{},
	} {
		_, cmd := v.Update(runes(k))
		require.NotNil(t, cmd, k)
		assert.Equal(t, want, cmd(), k)
	}
}

func TestProjectListCreate(t *testing.T) {
	env := testEnv(t)
	v := NewProjectListView(env)
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	var m tea.Model = v
	m, _ = m.Update(runes("n"))
	require.True(t, v.Editing())

	// Saving without a name keeps the form open
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.True(t, v.Editing())

	m = typeText(m, "Home")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.False(t, v.Editing())

	projects := env.Store.State().Projects
	require.Len(t, projects, 1)
	assert.Equal(t, "Home", projects[0].Name)
	assert.Equal(t, ProjectColors[0], projects[0].Color)
	assert.Equal(t, SelectedProject{Project: projects[0]}, cmd())
}

func TestProjectListDeleteCascades(t *testing.T) {
	env := testEnv(t)
	seed(env)
	v := NewProjectListView(env)
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	v.Update(runes("d"))
	assert.Contains(t, v.View(), "1 task(s)")
	v.Update(runes("y"))

	s := env.Store.State()
	assert.Empty(t, s.Projects)
	require.Len(t, s.Tasks, 1)
	assert.Equal(t, int64(11), s.Tasks[0].ID)
}

func TestDeletingFilteredProjectResetsBoard(t *testing.T) {
	env := testEnv(t)
	seed(env)
	b := NewBoardView(env)
	b.SetProject("1")
	require.Len(t, b.Column(), 1)

	v := NewProjectListView(env)
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	v.Update(runes("d"))
	v.Update(runes("y"))
	require.Empty(t, env.Store.State().Projects)

	b.Refresh()
	assert.Equal(t, board.All, b.Filters().Project)
	assert.Equal(t, board.All, b.projectLabel())
	assert.Len(t, b.Column(), 1)

	restored := NewBoardView(env)
	assert.Equal(t, board.All, restored.Filters().Project)
}

func TestBoardDropsStaleSavedProjectFilter(t *testing.T) {
	env := testEnv(t)
	seed(env)
	stale := board.DefaultFilters()
	stale.Project = "99"
	require.NoError(t, env.Prefs.SetFilters(stale))

	v := NewBoardView(env)
	assert.Equal(t, board.All, v.Filters().Project)
	assert.Len(t, v.Column(), 2)
}

func TestProjectListEdit(t *testing.T) {
	env := testEnv(t)
	seed(env)
	v := NewProjectListView(env)
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	v.Update(runes("e"))
	require.True(t, v.Editing())
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	v.Update(runes("l"))
	v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	p, ok := env.Store.State().Project(1)
	require.True(t, ok)
	assert.Equal(t, "Work", p.Name)
	assert.Equal(t, ProjectColors[1], p.Color)
}

func TestTemplatesApply(t *testing.T) {
	env := testEnv(t)
	v := NewTemplatesView(env)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	tasks := env.Store.State().Tasks
	require.Len(t, tasks, 4)
	assert.Equal(t, "Morning Exercise", tasks[0].Title)

	ids := map[int64]bool{}
	for _, task := range tasks {
		ids[task.ID] = true
	}
	assert.Len(t, ids, 4)
}

func TestAchievementsView(t *testing.T) {
	env := testEnv(t)
	env.Store.Dispatch(store.AddTask{Task: models.Task{ID: 1, Title: "x", Status: models.StatusDone}})

	v := NewAchievementsView(env)
	out := v.View()
	assert.Contains(t, out, "First Steps")
	assert.Contains(t, out, "1 of 8 unlocked")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, BackToBoard{}, cmd())
}
