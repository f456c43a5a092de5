package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/taskboard/internal/achievements"
	"github.com/tgienger/taskboard/internal/ui/keys"
	"github.com/tgienger/taskboard/internal/ui/styles"
)

// AchievementsView lists every badge and whether it is earned
type AchievementsView struct {
	env    Env
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int
}

func NewAchievementsView(env Env) *AchievementsView {
	return &AchievementsView{
		env:    env,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
}

func (v *AchievementsView) Init() tea.Cmd {
	return nil
}

func (v *AchievementsView) Restyle() {
	v.styles = styles.NewStyles()
}

func (v *AchievementsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
	case tea.KeyMsg:
		if key.Matches(msg, v.keys.Back) || key.Matches(msg, v.keys.Achievements) {
			return v, func() tea.Msg { return BackToBoard{} }
		}
	}
	return v, nil
}

// View renders the view
func (v *AchievementsView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	results := achievements.Evaluate(v.env.Store.State(), v.env.now())
	earned := 0
	rows := []string{s.Title.Render("Achievements"), ""}
	for _, r := range results {
		name := r.Rule.Icon + "  " + r.Rule.Name
		var line string
		if r.Earned {
			earned++
			line = lipgloss.NewStyle().Foreground(lipgloss.Color(r.Rule.Color)).Bold(true).Render(name)
		} else {
			line = s.TitleMuted.Render(name + "  (locked)")
		}
		rows = append(rows, line, s.TitleMuted.Render("   "+r.Rule.Description))
	}
	rows = append(rows,
		"",
		s.Stat.Render(fmt.Sprintf("%d of %d unlocked", earned, len(results))),
		s.TitleMuted.Render("Esc: back"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
	return styles.CenterView(centered, v.width, v.height)
}
