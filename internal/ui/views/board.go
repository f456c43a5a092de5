package views

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/taskboard/internal/board"
	"github.com/tgienger/taskboard/internal/logger"
	"github.com/tgienger/taskboard/internal/models"
	"github.com/tgienger/taskboard/internal/store"
	"github.com/tgienger/taskboard/internal/ui/keys"
	"github.com/tgienger/taskboard/internal/ui/styles"
	"go.uber.org/zap"
)

// BoardView shows the three status columns with the stats header and the
// filter bar.
type BoardView struct {
	env    Env
	styles *styles.Styles
	keys   keys.KeyMap
	help   help.Model

	width  int
	height int

	filters board.Filters
	columns board.Columns
	stats   board.Statistics

	// Focused column (index into models.Statuses) and per-column cursor
	col    int
	cursor [3]int

	search    textinput.Model
	searching bool

	// Delete confirmation
	confirmingDelete bool
	deleteTarget     models.Task

	// Help popup
	showHelpPopup bool
}

// NewBoardView restores the last used filters from the preferences
func NewBoardView(env Env) *BoardView {
	filters := board.DefaultFilters()
	if env.Prefs != nil {
		env.Prefs.Filters(&filters)
	}

	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100
	search.SetValue(filters.Search)

	v := &BoardView{
		env:     env,
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
		help:    help.New(),
		filters: filters,
		search:  search,
	}
	v.Refresh()
	return v
}

func (v *BoardView) Init() tea.Cmd {
	return nil
}

// Restyle picks up a theme change
func (v *BoardView) Restyle() {
	v.styles = styles.NewStyles()
}

// Filters returns the active filters
func (v *BoardView) Filters() board.Filters {
	return v.filters
}

// SetProject narrows the board to one project ("all", "none" or an id)
func (v *BoardView) SetProject(project string) {
	v.filters.Project = project
	v.filtersChanged()
}

// Column returns the tasks of the focused column
func (v *BoardView) Column() []models.Task {
	return v.columns.Get(models.Statuses[v.col])
}

// Selected returns the task under the cursor
func (v *BoardView) Selected() (models.Task, bool) {
	tasks := v.Column()
	if len(tasks) == 0 {
		return models.Task{}, false
	}
	return tasks[v.cursor[v.col]], true
}

// Refresh recomputes the columns and stats from the store. A project
// filter whose project no longer exists falls back to all projects.
func (v *BoardView) Refresh() {
	s := v.env.Store.State()
	if !projectExists(s, v.filters.Project) {
		v.filters.Project = board.All
		v.filtersChanged()
		return
	}
	v.columns = board.Board(s, v.filters)
	v.stats = board.Stats(s, v.env.now())
	for i, status := range models.Statuses {
		n := len(v.columns.Get(status))
		v.cursor[i] = clamp(v.cursor[i], 0, max(n-1, 0))
	}
}

func (v *BoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.help.Width = msg.Width
		return v, nil

	case tea.KeyMsg:
		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.searching {
			return v.updateSearch(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *BoardView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Enter):
		v.searching = false
		v.search.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	if v.search.Value() != v.filters.Search {
		v.filters.Search = v.search.Value()
		v.filtersChanged()
	}
	return v, cmd
}

func (v *BoardView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true

	case key.Matches(msg, v.keys.Left):
		v.col = max(v.col-1, 0)

	case key.Matches(msg, v.keys.Right):
		v.col = min(v.col+1, len(models.Statuses)-1)

	case key.Matches(msg, v.keys.Up):
		v.cursor[v.col] = max(v.cursor[v.col]-1, 0)

	case key.Matches(msg, v.keys.Down):
		v.cursor[v.col] = min(v.cursor[v.col]+1, max(len(v.Column())-1, 0))

	case key.Matches(msg, v.keys.Toggle):
		if t, ok := v.Selected(); ok {
			v.dispatch(store.ToggleTask{ID: t.ID})
		}

	case key.Matches(msg, v.keys.MoveLeft):
		v.move(-1)

	case key.Matches(msg, v.keys.MoveRight):
		v.move(1)

	case key.Matches(msg, v.keys.New):
		status := models.Statuses[v.col]
		return v, func() tea.Msg { return OpenTaskForm{Status: status} }

	case key.Matches(msg, v.keys.Edit), key.Matches(msg, v.keys.Enter):
		if t, ok := v.Selected(); ok {
			return v, func() tea.Msg { return OpenTaskForm{Task: &t, Status: t.Status} }
		}

	case key.Matches(msg, v.keys.Delete):
		if t, ok := v.Selected(); ok {
			v.confirmingDelete = true
			v.deleteTarget = t
		}

	case key.Matches(msg, v.keys.Search):
		v.searching = true
		v.search.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Category):
		v.filters.Category = next(v.categoryOptions(), v.filters.Category)
		v.filtersChanged()

	case key.Matches(msg, v.keys.Priority):
		v.filters.Priority = next(priorityOptions(), v.filters.Priority)
		v.filtersChanged()

	case key.Matches(msg, v.keys.Project):
		v.filters.Project = next(v.projectOptions(), v.filters.Project)
		v.filtersChanged()

	case key.Matches(msg, v.keys.Clear):
		v.filters = board.DefaultFilters()
		v.search.SetValue("")
		v.filtersChanged()

	case key.Matches(msg, v.keys.Projects):
		return v, func() tea.Msg { return OpenProjects{} }

	case key.Matches(msg, v.keys.Templates):
		return v, func() tea.Msg { return OpenTemplates{} }

	case key.Matches(msg, v.keys.Achievements):
		return v, func() tea.Msg { return OpenAchievements{} }

	case key.Matches(msg, v.keys.Theme):
		return v, func() tea.Msg { return ToggleTheme{} }
	}
	return v, nil
}

func (v *BoardView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.dispatch(store.DeleteTask{ID: v.deleteTarget.ID})
		v.confirmingDelete = false
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return v, nil
}

// move shifts the selected task one column left or right, the keyboard
// version of dragging a card.
func (v *BoardView) move(dir int) {
	t, ok := v.Selected()
	if !ok {
		return
	}
	to := v.col + dir
	if to < 0 || to >= len(models.Statuses) {
		return
	}
	v.dispatch(store.UpdateTaskStatus{ID: t.ID, Status: models.Statuses[to]})
	v.col = to
	// follow the card into its new column
	if i := slices.IndexFunc(v.Column(), func(c models.Task) bool { return c.ID == t.ID }); i >= 0 {
		v.cursor[v.col] = i
	}
}

func (v *BoardView) dispatch(cmd store.Command) {
	v.env.Store.Dispatch(cmd)
	v.Refresh()
}

func (v *BoardView) filtersChanged() {
	v.cursor = [3]int{}
	v.Refresh()
	if v.env.Prefs == nil {
		return
	}
	if err := v.env.Prefs.SetFilters(v.filters); err != nil {
		logger.Warn("board: save filters failed", zap.Error(err))
	}
}

func projectExists(s models.State, project string) bool {
	switch project {
	case "", board.All, board.None:
		return true
	}
	id, err := strconv.ParseInt(project, 10, 64)
	if err != nil {
		return false
	}
	_, ok := s.Project(id)
	return ok
}

func (v *BoardView) categoryOptions() []string {
	return append([]string{board.All}, board.Categories(v.env.Store.State())...)
}

func priorityOptions() []string {
	opts := []string{board.All}
	for _, p := range models.Priorities {
		opts = append(opts, string(p))
	}
	return opts
}

func (v *BoardView) projectOptions() []string {
	opts := []string{board.All, board.None}
	for _, p := range v.env.Store.State().Projects {
		opts = append(opts, strconv.FormatInt(p.ID, 10))
	}
	return opts
}

// next returns the option after current, wrapping around. An unknown or
// empty current starts from the first option.
func next(options []string, current string) string {
	if current == "" {
		current = board.All
	}
	i := slices.Index(options, current)
	return options[(i+1)%len(options)]
}

func (v *BoardView) projectLabel() string {
	switch v.filters.Project {
	case "", board.All:
		return board.All
	case board.None:
		return "no project"
	}
	id, err := strconv.ParseInt(v.filters.Project, 10, 64)
	if err != nil {
		return v.filters.Project
	}
	if p, ok := v.env.Store.State().Project(id); ok {
		return p.Name
	}
	return v.filters.Project
}

// View renders the view
func (v *BoardView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		v.renderStats(),
		v.renderFilterBar(),
		v.renderColumns(),
		v.styles.StatusBar.Render(v.help.ShortHelpView(v.keys.ShortHelp())),
	)
}

func (v *BoardView) renderStats() string {
	s := v.styles
	stat := func(label string, value int) string {
		return s.Stat.Render(label + " " + s.StatValue.Render(strconv.Itoa(value)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.Title.Render("TaskBoard  "),
		stat("Total", v.stats.Total),
		stat("To Do", v.stats.Todo),
		stat("In Progress", v.stats.InProgress),
		stat("Done", v.stats.Completed),
		stat("Overdue", v.stats.Overdue),
		s.Stat.Render(s.StatValue.Render(fmt.Sprintf("%d%%", v.stats.CompletionRate))+" complete"),
	)
}

func (v *BoardView) renderFilterBar() string {
	s := v.styles
	label := func(name, value string) string {
		if value == "" || value == board.All {
			return s.TitleMuted.Render(name + ": all")
		}
		return s.TitleMuted.Render(name+": ") + s.FilterActive.Render(value)
	}

	searchBox := v.search.View()
	if !v.searching && v.filters.Search == "" {
		searchBox = s.TitleMuted.Render("/ to search")
	}

	return s.FilterBar.Render(strings.Join([]string{
		searchBox,
		label("category", v.filters.Category),
		label("priority", v.filters.Priority),
		label("project", v.projectLabel()),
	}, s.TitleMuted.Render(" │ ")))
}

func (v *BoardView) renderColumns() string {
	width := min(max(v.width, 60), styles.BoardMaxWidth)
	colWidth := width/3 - 2
	// stats + filter bar + help take about 7 lines; each card is 2 lines
	visible := max((v.height-10)/2, 1)

	cols := make([]string, 0, len(models.Statuses))
	for i, status := range models.Statuses {
		tasks := v.columns.Get(status)
		focused := i == v.col

		lines := []string{
			v.styles.ColumnTitle.Render(fmt.Sprintf("%s (%d)", status, len(tasks))),
		}
		if len(tasks) == 0 {
			lines = append(lines, v.styles.TitleMuted.Render("No tasks"))
		}

		start := max(v.cursor[i]-visible+1, 0)
		end := min(start+visible, len(tasks))
		for j := start; j < end; j++ {
			lines = append(lines, v.renderCard(tasks[j], colWidth-2, focused && j == v.cursor[i]))
		}

		style := v.styles.Column
		if focused {
			style = v.styles.ColumnFocused
		}
		cols = append(cols, style.Width(colWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (v *BoardView) renderCard(t models.Task, width int, selected bool) string {
	s := v.styles
	now := v.env.now()

	marker := lipgloss.NewStyle().Foreground(styles.PriorityColor(t.Priority)).Render("●")
	titleStyle := s.Card
	if selected {
		titleStyle = s.CardSelected
	}
	title := t.Title
	if t.Status == models.StatusDone && !selected {
		title = s.Done.Render(title)
	}

	var meta []string
	if p := board.ResolveProject(t, v.env.Store.State()); p.ID != 0 {
		meta = append(meta, lipgloss.NewStyle().Foreground(styles.ProjectColor(p.Color)).Render(p.Name))
	}
	if t.DueDate != nil {
		due := "due " + t.DueDateString()
		switch {
		case t.Status == models.StatusDone:
			due = s.TitleMuted.Render(due)
		case board.IsOverdue(t, now):
			due = s.Overdue.Render("overdue " + t.DueDateString())
		case board.IsDueWithin(t, now, v.env.dueSoon()):
			due = s.DueSoon.Render(due)
		default:
			due = s.TitleMuted.Render(due)
		}
		meta = append(meta, due)
	}
	if t.Assignee != "" {
		meta = append(meta, s.TitleMuted.Render("@"+t.Assignee))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Width(width).Render(marker+" "+title),
		s.Card.Width(width).Render(strings.Join(meta, " · ")),
	)
}

func (v *BoardView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("Are you sure you want to delete %q?", v.deleteTarget.Title)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *BoardView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	v.help.ShowAll = true
	defer func() { v.help.ShowAll = false }()

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Keyboard Shortcuts"),
		"",
		v.help.View(v.keys),
		"",
		s.TitleMuted.Render("Press any key to close"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}
