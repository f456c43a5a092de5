package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/taskboard/internal/templates"
	"github.com/tgienger/taskboard/internal/ui/keys"
	"github.com/tgienger/taskboard/internal/ui/styles"
)

// TemplatesView picks a built-in template and adds its tasks to the board
type TemplatesView struct {
	env    Env
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int
	cursor int
}

func NewTemplatesView(env Env) *TemplatesView {
	return &TemplatesView{
		env:    env,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
}

func (v *TemplatesView) Init() tea.Cmd {
	return nil
}

func (v *TemplatesView) Restyle() {
	v.styles = styles.NewStyles()
}

// Apply dispatches one AddTask per item of the named template
func (v *TemplatesView) Apply(name string) (int, error) {
	cmds, err := templates.Commands(name, v.env.Store.NextID, v.env.now())
	if err != nil {
		return 0, err
	}
	for _, c := range cmds {
		v.env.Store.Dispatch(c)
	}
	return len(cmds), nil
}

func (v *TemplatesView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Back):
			return v, func() tea.Msg { return BackToBoard{} }
		case key.Matches(msg, v.keys.Up):
			v.cursor = max(v.cursor-1, 0)
		case key.Matches(msg, v.keys.Down):
			v.cursor = min(v.cursor+1, len(templates.Builtin)-1)
		case key.Matches(msg, v.keys.Enter):
			name := templates.Builtin[v.cursor].Name
			n, err := v.Apply(name)
			text := fmt.Sprintf("Added %d tasks from %q", n, name)
			if err != nil {
				text = err.Error()
			}
			return v, tea.Batch(
				func() tea.Msg { return Notice{Text: text} },
				func() tea.Msg { return BackToBoard{} },
			)
		}
	}
	return v, nil
}

// View renders the view
func (v *TemplatesView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	rows := []string{s.Title.Render("Task Templates"), ""}
	for i, t := range templates.Builtin {
		style := s.ListItem
		if i == v.cursor {
			style = s.ListSelected
		}
		titles := make([]string, len(t.Items))
		for j, item := range t.Items {
			titles[j] = item.Title
		}
		rows = append(rows,
			style.Width(contentWidth-4).Render(t.Name),
			style.Foreground(styles.Current.ForegroundDim).Width(contentWidth-4).Render(strings.Join(titles, ", ")),
			"",
		)
	}
	rows = append(rows, s.TitleMuted.Render("↑↓: choose • Enter: add tasks • Esc: back"))

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
	return styles.CenterView(centered, v.width, v.height)
}
