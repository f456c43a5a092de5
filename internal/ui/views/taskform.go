package views

import (
	"errors"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/taskboard/internal/models"
	"github.com/tgienger/taskboard/internal/store"
	"github.com/tgienger/taskboard/internal/ui/keys"
	"github.com/tgienger/taskboard/internal/ui/styles"
)

var (
	errTitleRequired = errors.New("title is required")
	errBadDueDate    = errors.New("due date must be YYYY-MM-DD")
)

// Form fields in focus order
const (
	fieldTitle = iota
	fieldDesc
	fieldAssignee
	fieldCategory
	fieldEstimate
	fieldDue
	fieldPriority
	fieldStatus
	fieldProject
	fieldSave
	fieldCount
)

// TaskForm creates or edits one task
type TaskForm struct {
	env    Env
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	editing *models.Task // nil for a new task

	inputs   [fieldPriority]textinput.Model
	priority int // index into priorityChoices
	status   int // index into models.Statuses
	project  int // 0 = no project, else index+1 into projects
	projects []models.Project

	focusIdx int
	err      error
}

var priorityChoices = []models.Priority{"", models.PriorityHigh, models.PriorityMedium, models.PriorityLow}

// NewTaskForm opens the form for task, or for a new task in status when
// task is nil. New tasks start in the project the board is filtered to.
func NewTaskForm(env Env, task *models.Task, status models.Status, projectID *int64) *TaskForm {
	f := &TaskForm{
		env:      env,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		editing:  task,
		projects: env.Store.State().Projects,
		priority: 2,
	}

	placeholders := [fieldPriority]string{
		"Task title", "Description (optional)", "Assignee (optional)",
		"Category (optional)", "Estimated hours (optional)", "YYYY-MM-DD (optional)",
	}
	limits := [fieldPriority]int{200, 1000, 100, 50, 20, 10}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = limits[i]
		f.inputs[i] = in
	}

	f.status = max(slices.Index(models.Statuses, status), 0)
	if task != nil {
		f.inputs[fieldTitle].SetValue(task.Title)
		f.inputs[fieldDesc].SetValue(task.Description)
		f.inputs[fieldAssignee].SetValue(task.Assignee)
		f.inputs[fieldCategory].SetValue(task.Category)
		f.inputs[fieldEstimate].SetValue(task.EstimatedTime)
		f.inputs[fieldDue].SetValue(task.DueDateString())
		f.priority = max(slices.Index(priorityChoices, task.Priority), 0)
		f.status = max(slices.Index(models.Statuses, task.Status), 0)
		projectID = task.ProjectID
	}
	if projectID != nil {
		if i := slices.IndexFunc(f.projects, func(p models.Project) bool { return p.ID == *projectID }); i >= 0 {
			f.project = i + 1
		}
	}

	f.updateFocus()
	return f
}

func (f *TaskForm) Init() tea.Cmd {
	return textinput.Blink
}

func (f *TaskForm) Restyle() {
	f.styles = styles.NewStyles()
}

// Err is the validation error of the last submit
func (f *TaskForm) Err() error {
	return f.err
}

// SetValue fills a text field, for tests and prefilled forms
func (f *TaskForm) SetValue(field int, value string) {
	if field >= 0 && field < len(f.inputs) {
		f.inputs[field].SetValue(value)
	}
}

// Command builds the AddTask or EditTask command for the form contents.
// Required fields are checked here so the store never sees an empty title.
func (f *TaskForm) Command() (store.Command, error) {
	title := strings.TrimSpace(f.inputs[fieldTitle].Value())
	if title == "" {
		return nil, errTitleRequired
	}

	dueDate := strings.TrimSpace(f.inputs[fieldDue].Value())
	dueUpdate := store.WithDueDate(nil)
	if dueDate != "" {
		d, err := models.ParseDate(dueDate)
		if err != nil {
			return nil, errBadDueDate
		}
		dueUpdate = store.WithDueDate(&d)
	}

	var projectID *int64
	if f.project > 0 {
		projectID = models.Int64(f.projects[f.project-1].ID)
	}

	updates := []store.TaskUpdate{
		store.WithTitle(title),
		store.WithDescription(strings.TrimSpace(f.inputs[fieldDesc].Value())),
		store.WithAssignee(strings.TrimSpace(f.inputs[fieldAssignee].Value())),
		store.WithCategory(strings.TrimSpace(f.inputs[fieldCategory].Value())),
		store.WithEstimatedTime(strings.TrimSpace(f.inputs[fieldEstimate].Value())),
		store.WithPriority(priorityChoices[f.priority]),
		store.WithStatus(models.Statuses[f.status]),
		dueUpdate,
		store.WithProject(projectID),
	}

	if f.editing != nil {
		return store.EditTask{ID: f.editing.ID, Updates: updates}, nil
	}

	t := models.Task{
		ID:        f.env.Store.NextID(),
		CreatedAt: f.env.now(),
	}
	for _, u := range updates {
		u(&t)
	}
	return store.AddTask{Task: t}, nil
}

func (f *TaskForm) submit() tea.Cmd {
	cmd, err := f.Command()
	if err != nil {
		f.err = err
		f.focusIdx = fieldTitle
		if errors.Is(err, errBadDueDate) {
			f.focusIdx = fieldDue
		}
		f.updateFocus()
		return nil
	}
	f.env.Store.Dispatch(cmd)
	return func() tea.Msg { return BackToBoard{} }
}

func (f *TaskForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
		f.height = msg.Height
		return f, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, f.keys.Back):
			return f, func() tea.Msg { return BackToBoard{} }

		case key.Matches(msg, f.keys.Save):
			return f, f.submit()

		case msg.String() == "shift+tab", msg.String() == "up":
			f.focusIdx = (f.focusIdx + fieldCount - 1) % fieldCount
			f.updateFocus()
			return f, nil

		case key.Matches(msg, f.keys.Tab), msg.String() == "down":
			f.focusIdx = (f.focusIdx + 1) % fieldCount
			f.updateFocus()
			return f, nil

		case key.Matches(msg, f.keys.Enter):
			if f.focusIdx == fieldSave {
				return f, f.submit()
			}
			f.focusIdx++
			f.updateFocus()
			return f, nil
		}

		if f.focusIdx >= fieldPriority && f.focusIdx < fieldSave {
			switch msg.String() {
			case "left", "h":
				f.cycle(-1)
			case "right", "l", " ":
				f.cycle(1)
			}
			return f, nil
		}
	}

	if f.focusIdx < fieldPriority {
		var cmd tea.Cmd
		f.inputs[f.focusIdx], cmd = f.inputs[f.focusIdx].Update(msg)
		return f, cmd
	}
	return f, nil
}

func (f *TaskForm) cycle(dir int) {
	wrap := func(i, n int) int { return (i + dir + n) % n }
	switch f.focusIdx {
	case fieldPriority:
		f.priority = wrap(f.priority, len(priorityChoices))
	case fieldStatus:
		f.status = wrap(f.status, len(models.Statuses))
	case fieldProject:
		f.project = wrap(f.project, len(f.projects)+1)
	}
}

func (f *TaskForm) updateFocus() {
	for i := range f.inputs {
		if i == f.focusIdx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// View renders the view
func (f *TaskForm) View() string {
	s := f.styles
	contentWidth := styles.ContentWidth(f.width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	formTitle := "New Task"
	if f.editing != nil {
		formTitle = "Edit Task"
	}

	labels := [fieldPriority]string{"Title:", "Description:", "Assignee:", "Category:", "Estimated time:", "Due date:"}
	rows := []string{s.Title.Render(formTitle), ""}
	for i, in := range f.inputs {
		style := s.Input
		if f.focusIdx == i {
			style = s.InputFocused
		}
		rows = append(rows, labels[i], style.Width(inputWidth).Render(in.View()))
	}

	priority := string(priorityChoices[f.priority])
	if priority == "" {
		priority = "None"
	}
	project := "No Project"
	if f.project > 0 {
		project = f.projects[f.project-1].Name
	}
	rows = append(rows,
		"",
		f.renderChoice("Priority", priority, fieldPriority),
		f.renderChoice("Status", string(models.Statuses[f.status]), fieldStatus),
		f.renderChoice("Project", project, fieldProject),
		"",
	)

	btnStyle := s.Button
	if f.focusIdx == fieldSave {
		btnStyle = s.ButtonFocused
	}
	rows = append(rows, btnStyle.Render(" Save "))
	if f.err != nil {
		rows = append(rows, s.Error.Render(f.err.Error()))
	}
	rows = append(rows, "", s.TitleMuted.Render("Tab: next • ←→: change • Ctrl+S: save • Esc: cancel"))

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	centered := lipgloss.Place(contentWidth, f.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, f.width, f.height)
}

func (f *TaskForm) renderChoice(label, value string, field int) string {
	s := f.styles
	style := s.ListItem
	if f.focusIdx == field {
		style = s.ListSelected
	}
	return style.Render(label + ":  ‹ " + value + " ›")
}
