package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tgienger/taskboard/internal/achievements"
	"github.com/tgienger/taskboard/internal/events"
	"github.com/tgienger/taskboard/internal/pomodoro"
	"github.com/tgienger/taskboard/internal/ui"
	"github.com/tgienger/taskboard/internal/ui/styles"
	"github.com/tgienger/taskboard/internal/ui/views"
)

func (o *options) runTUI(cmd *cobra.Command, args []string) error {
	rt, err := o.open()
	if err != nil {
		return err
	}
	defer rt.Close()

	app, cleanup := rt.newApp(time.Now)
	defer cleanup()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run board: %w", err)
	}
	return nil
}

// newApp wires the store, the celebration signal and the achievement
// announcer into the board UI.
func (rt *runtime) newApp(now func() time.Time) (*ui.App, func()) {
	styles.SetDark(rt.prefs.Dark(rt.cfg.UI.Dark))

	celebrate := events.CelebrationSignal(rt.bus)
	announcer := achievements.NewAnnouncer(rt.bus, celebrate, rt.prefs, rt.store.State(), now())
	detach := announcer.Attach(rt.store.State, now)

	timer := pomodoro.New(pomodoro.Durations{
		Focus:     rt.cfg.Pomodoro.Focus,
		Break:     rt.cfg.Pomodoro.Break,
		LongBreak: rt.cfg.Pomodoro.LongBreak,
	})

	env := views.Env{
		Store:       rt.store,
		Prefs:       rt.prefs,
		Now:         now,
		DueSoonDays: rt.cfg.Board.DueSoonDays,
	}
	app := ui.NewApp(env, rt.bus, celebrate, timer)

	return app, func() {
		app.Close()
		detach()
		announcer.Close()
	}
}
