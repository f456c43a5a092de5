package views

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/taskboard/internal/board"
	"github.com/tgienger/taskboard/internal/models"
	"github.com/tgienger/taskboard/internal/store"
	"github.com/tgienger/taskboard/internal/ui/keys"
	"github.com/tgienger/taskboard/internal/ui/styles"
)

type projectItem struct {
	summary board.ProjectSummary
}

func (i projectItem) Title() string { return i.summary.Project.Name }
func (i projectItem) Description() string {
	if i.summary.Project.Description != "" {
		return i.summary.Project.Description
	}
	return "No description"
}
func (i projectItem) FilterValue() string { return i.summary.Project.Name }

type projectDelegate struct {
	styles *styles.Styles
	width  int
}

func (d projectDelegate) Height() int                               { return 3 }
func (d projectDelegate) Spacing() int                              { return 1 }
func (d projectDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	p, ok := item.(projectItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	base := d.styles.ListItem
	if selected {
		base = d.styles.ListSelected
	}
	swatch := lipgloss.NewStyle().Foreground(styles.ProjectColor(p.summary.Project.Color)).Render("●")

	title := base.Width(width).Render(swatch + " " + p.Title())
	desc := base.Foreground(styles.Current.ForegroundDim).Width(width).Render(p.Description())
	progress := base.Foreground(styles.Current.ForegroundDim).Width(width).Render(
		fmt.Sprintf("%d/%d done • %d%%", p.summary.Completed, p.summary.Total, p.summary.CompletionRate),
	)

	fmt.Fprintf(w, "%s\n%s\n%s", title, desc, progress)
}

// ProjectListView lists projects with their progress and hosts the
// create/edit form.
type ProjectListView struct {
	env      Env
	list     list.Model
	delegate *projectDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int

	editing          bool
	editID           int64 // 0 while creating
	confirmingDelete bool
	deleteTarget     board.ProjectSummary
	newName          textinput.Model
	newDesc          textinput.Model
	color            int
	focusIdx         int // 0=name, 1=desc, 2=color, 3=confirm
	err              string

	// Help popup (shown with ? at narrow widths)
	showHelpPopup bool
}

func NewProjectListView(env Env) *ProjectListView {
	s := styles.NewStyles()

	newName := textinput.New()
	newName.Placeholder = "Project name"
	newName.CharLimit = 100

	newDesc := textinput.New()
	newDesc.Placeholder = "Description (optional)"
	newDesc.CharLimit = 500

	delegate := &projectDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Projects"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	v := &ProjectListView{
		env:      env,
		list:     l,
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		newName:  newName,
		newDesc:  newDesc,
	}
	v.Refresh()
	return v
}

func (v *ProjectListView) Init() tea.Cmd {
	return nil
}

func (v *ProjectListView) Restyle() {
	v.styles = styles.NewStyles()
	v.delegate.styles = v.styles
	v.list.Styles.Title = v.styles.Title
}

// Refresh reloads the project summaries from the store
func (v *ProjectListView) Refresh() {
	summaries := board.ProjectStats(v.env.Store.State())
	items := make([]list.Item, 0, len(summaries))
	for _, ps := range summaries {
		// The unassigned bucket is not a project that can be edited
		if ps.Project.ID == board.NoProject.ID {
			continue
		}
		items = append(items, projectItem{summary: ps})
	}
	v.list.SetItems(items)
}

// Editing reports whether the create/edit form is open
func (v *ProjectListView) Editing() bool {
	return v.editing
}

func (v *ProjectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-6)
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.editing {
			return v.updateEditing(msg)
		}

		// Let the list own keys while its filter is being typed
		if v.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back):
			if v.list.FilterState() == list.FilterApplied {
				v.list.ResetFilter()
				return v, nil
			}
			return v, func() tea.Msg { return BackToBoard{} }
		case key.Matches(msg, v.keys.New):
			return v, v.openForm(nil)
		case key.Matches(msg, v.keys.Edit):
			if item, ok := v.list.SelectedItem().(projectItem); ok {
				p := item.summary.Project
				return v, v.openForm(&p)
			}
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			if item, ok := v.list.SelectedItem().(projectItem); ok {
				return v, func() tea.Msg {
					return SelectedProject{Project: item.summary.Project}
				}
			}
		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(projectItem); ok {
				v.confirmingDelete = true
				v.deleteTarget = item.summary
				return v, nil
			}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *ProjectListView) openForm(p *models.Project) tea.Cmd {
	v.editing = true
	v.focusIdx = 0
	v.err = ""
	v.newName.Reset()
	v.newDesc.Reset()
	v.editID = 0
	v.color = len(v.env.Store.State().Projects) % len(ProjectColors)
	if p != nil {
		v.editID = p.ID
		v.newName.SetValue(p.Name)
		v.newDesc.SetValue(p.Description)
		if i := slices.Index(ProjectColors, p.Color); i >= 0 {
			v.color = i
		}
	}
	v.updateFocus()
	return textinput.Blink
}

func (v *ProjectListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.env.Store.Dispatch(store.DeleteProject{ID: v.deleteTarget.Project.ID})
		v.confirmingDelete = false
		v.Refresh()
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *ProjectListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case key.Matches(msg, v.keys.Save):
		return v, v.save()

	case msg.String() == "shift+tab":
		v.focusIdx = (v.focusIdx + 3) % 4
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % 4
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx == 3 {
			return v, v.save()
		}
		v.focusIdx++
		v.updateFocus()
		return v, nil
	}

	if v.focusIdx == 2 {
		switch msg.String() {
		case "left", "h":
			v.color = (v.color + len(ProjectColors) - 1) % len(ProjectColors)
		case "right", "l", " ":
			v.color = (v.color + 1) % len(ProjectColors)
		}
		return v, nil
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.newName, cmd = v.newName.Update(msg)
	case 1:
		v.newDesc, cmd = v.newDesc.Update(msg)
	}
	return v, cmd
}

// save dispatches AddProject or EditProject. New projects are selected on
// the board right away.
func (v *ProjectListView) save() tea.Cmd {
	name := strings.TrimSpace(v.newName.Value())
	if name == "" {
		v.err = "Project name is required"
		v.focusIdx = 0
		v.updateFocus()
		return nil
	}
	desc := strings.TrimSpace(v.newDesc.Value())
	color := ProjectColors[v.color]

	v.editing = false
	if v.editID != 0 {
		v.env.Store.Dispatch(store.EditProject{ID: v.editID, Updates: []store.ProjectUpdate{
			store.WithName(name),
			store.WithProjectDescription(desc),
			store.WithColor(color),
		}})
		v.Refresh()
		return nil
	}

	p := models.Project{ID: v.env.Store.NextID(), Name: name, Description: desc, Color: color}
	v.env.Store.Dispatch(store.AddProject{Project: p})
	v.Refresh()
	return func() tea.Msg { return SelectedProject{Project: p} }
}

func (v *ProjectListView) updateFocus() {
	v.newName.Blur()
	v.newDesc.Blur()
	switch v.focusIdx {
	case 0:
		v.newName.Focus()
	case 1:
		v.newDesc.Focus()
	}
}

// View renders the view
func (v *ProjectListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.editing {
		return v.renderForm()
	}

	if len(v.list.Items()) == 0 {
		return v.renderEmpty()
	}

	content := v.list.View() + "\n" + v.renderHelp()
	return styles.CenterView(content, v.width, v.height)
}

func (v *ProjectListView) renderEmpty() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("No Projects"),
		"",
		s.TitleMuted.Render("Press 'n' to create your first project"),
		"",
		s.ButtonPrimary.Render(" New Project "),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectListView) renderForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	nameStyle := s.Input
	descStyle := s.Input
	colorStyle := s.ListItem
	btnStyle := s.Button

	switch v.focusIdx {
	case 0:
		nameStyle = s.InputFocused
	case 1:
		descStyle = s.InputFocused
	case 2:
		colorStyle = s.ListSelected
	case 3:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	var swatches []string
	for i, c := range ProjectColors {
		mark := "○"
		if i == v.color {
			mark = "●"
		}
		swatches = append(swatches, lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(mark))
	}

	formTitle, button := "New Project", " Create "
	if v.editID != 0 {
		formTitle, button = "Edit Project", " Save "
	}

	rows := []string{
		s.Title.Render(formTitle),
		"",
		"Name:",
		nameStyle.Width(inputWidth).Render(v.newName.View()),
		"",
		"Description:",
		descStyle.Width(inputWidth).Render(v.newDesc.View()),
		"",
		colorStyle.Render("Color:  " + strings.Join(swatches, " ")),
		"",
		btnStyle.Render(button),
	}
	if v.err != "" {
		rows = append(rows, s.Error.Render(v.err))
	}
	rows = append(rows, "", s.TitleMuted.Render("Tab: next • ←→: color • Ctrl+S: save • Esc: cancel"))

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	return v.styles.Help.Render(
		fmt.Sprintf("%s show on board • %s new • %s edit • %s del • %s back",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("esc"),
		),
	)
}

func (v *ProjectListView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("↵") + "      show project on board",
		s.HelpKey.Render("n") + "      new project",
		s.HelpKey.Render("e") + "      edit project",
		s.HelpKey.Render("d") + "      delete project",
		s.HelpKey.Render("/") + "      filter",
		s.HelpKey.Render("esc") + "    back to board",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	warning := "This project has no tasks."
	if n := v.deleteTarget.Total; n > 0 {
		warning = fmt.Sprintf("This will also delete %d task(s) in this project.", n)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Project?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("Are you sure you want to delete %q?", v.deleteTarget.Project.Name)),
		s.TitleMuted.Render(warning),
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
