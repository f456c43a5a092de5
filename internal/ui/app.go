package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/taskboard/internal/events"
	"github.com/tgienger/taskboard/internal/logger"
	"github.com/tgienger/taskboard/internal/pomodoro"
	"github.com/tgienger/taskboard/internal/ui/keys"
	"github.com/tgienger/taskboard/internal/ui/styles"
	"github.com/tgienger/taskboard/internal/ui/views"
	"go.uber.org/zap"
)

// Currently active view
type View int

const (
	ViewBoard View = iota
	ViewProjects
	ViewTaskForm
	ViewTemplates
	ViewAchievements
)

const (
	bannerDuration = 3 * time.Second
	toastDuration  = 4 * time.Second
	eventBuffer    = 64
)

// Lines taken by the banner/toast row and the status bar
const chromeHeight = 2

type (
	eventMsg      struct{ event events.Event }
	bannerDoneMsg struct{ gen int }
	toastDoneMsg  struct{ gen int }
	timerTickMsg  struct{ gen int }
)

type App struct {
	env       views.Env
	bus       *events.Bus
	celebrate *events.Signal[bool]
	timer     *pomodoro.Timer
	keys      keys.KeyMap
	styles    *styles.Styles

	events      chan events.Event
	unsubscribe func()

	currentView  View
	board        *views.BoardView
	projects     *views.ProjectListView
	taskForm     *views.TaskForm
	templates    *views.TemplatesView
	achievements *views.AchievementsView

	width  int
	height int

	banner    string
	bannerGen int
	toast     string
	toastGen  int
	timerGen  int
}

// NewApp creates the application. Every bus event is forwarded into the
// bubbletea loop; the bus itself never waits on the UI.
func NewApp(env views.Env, bus *events.Bus, celebrate *events.Signal[bool], timer *pomodoro.Timer) *App {
	if timer == nil {
		timer = pomodoro.New(pomodoro.DefaultDurations())
	}
	a := &App{
		env:          env,
		bus:          bus,
		celebrate:    celebrate,
		timer:        timer,
		keys:         keys.DefaultKeyMap(),
		styles:       styles.NewStyles(),
		events:       make(chan events.Event, eventBuffer),
		board:        views.NewBoardView(env),
		projects:     views.NewProjectListView(env),
		templates:    views.NewTemplatesView(env),
		achievements: views.NewAchievementsView(env),
	}
	if bus != nil {
		a.unsubscribe = bus.SubscribeAll(a.forward)
	}
	return a
}

func (a *App) forward(ev events.Event) {
	select {
	case a.events <- ev:
	default:
		logger.Warn("ui: event dropped", zap.Stringer("kind", ev.Kind))
	}
}

func (a *App) waitForEvent() tea.Msg {
	ev, ok := <-a.events
	if !ok {
		return nil
	}
	return eventMsg{event: ev}
}

// Close detaches the app from the bus
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// CurrentView reports the active view
func (a *App) CurrentView() View {
	return a.currentView
}

// Board returns the board view
func (a *App) Board() *views.BoardView {
	return a.board
}

// Toast returns the message currently shown in the toast row
func (a *App) Toast() string {
	return a.toast
}

// Banner returns the celebration banner, "" when none is showing
func (a *App) Banner() string {
	return a.banner
}

// Timer returns the pomodoro timer
func (a *App) Timer() *pomodoro.Timer {
	return a.timer
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.board.Init(), a.waitForEvent)
}

func (a *App) resize() tea.Cmd {
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: a.width, Height: a.height}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-chromeHeight, 0)}
		a.board.Update(inner)
		a.projects.Update(inner)
		a.templates.Update(inner)
		a.achievements.Update(inner)
		if a.taskForm != nil {
			a.taskForm.Update(inner)
		}
		return a, nil

	case eventMsg:
		return a, tea.Batch(a.handleEvent(msg.event), a.waitForEvent)

	case bannerDoneMsg:
		if msg.gen == a.bannerGen {
			a.banner = ""
			if a.celebrate != nil {
				a.celebrate.Set(false)
			}
		}
		return a, nil

	case toastDoneMsg:
		if msg.gen == a.toastGen {
			a.toast = ""
		}
		return a, nil

	case timerTickMsg:
		return a, a.tickTimer(msg.gen)

	case views.Notice:
		if a.bus != nil {
			a.bus.Publish(events.Notice, events.NoticePayload{Text: msg.Text})
			return a, nil
		}
		return a, a.showToast(msg.Text)

	case views.BackToBoard:
		a.currentView = ViewBoard
		a.taskForm = nil
		a.board.Refresh()
		return a, nil

	case views.OpenProjects:
		a.currentView = ViewProjects
		a.projects.Refresh()
		return a, a.resize()

	case views.OpenTemplates:
		a.currentView = ViewTemplates
		return a, a.resize()

	case views.OpenAchievements:
		a.currentView = ViewAchievements
		return a, a.resize()

	case views.OpenTaskForm:
		var project *int64
		if id, err := strconv.ParseInt(a.board.Filters().Project, 10, 64); err == nil {
			project = &id
		}
		a.taskForm = views.NewTaskForm(a.env, msg.Task, msg.Status, project)
		a.currentView = ViewTaskForm
		return a, tea.Batch(a.taskForm.Init(), a.resize())

	case views.SelectedProject:
		a.currentView = ViewBoard
		a.board.SetProject(strconv.FormatInt(msg.Project.ID, 10))
		return a, nil

	case views.ToggleTheme:
		a.toggleTheme()
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch {
		case key.Matches(msg, a.keys.Timer):
			a.timer.Toggle()
			return a, a.restartTicks()
		case key.Matches(msg, a.keys.TimerReset):
			a.timer.Reset()
			a.timerGen++
			return a, nil
		case key.Matches(msg, a.keys.TimerMode):
			a.timer.Switch(nextMode(a.timer.Mode()))
			a.timerGen++
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewBoard:
		_, cmd = a.board.Update(msg)
	case ViewProjects:
		_, cmd = a.projects.Update(msg)
	case ViewTaskForm:
		if a.taskForm != nil {
			_, cmd = a.taskForm.Update(msg)
		}
	case ViewTemplates:
		_, cmd = a.templates.Update(msg)
	case ViewAchievements:
		_, cmd = a.achievements.Update(msg)
	}
	return a, cmd
}

func (a *App) handleEvent(ev events.Event) tea.Cmd {
	switch p := ev.Payload.(type) {
	case events.StateChangedPayload:
		a.board.Refresh()
		if a.currentView == ViewProjects {
			a.projects.Refresh()
		}

	case events.TaskCompletedPayload:
		// The bus already raised the celebration flag; the banner lowers it
		a.banner = "🎉 Task completed: " + p.Title
		a.bannerGen++
		gen := a.bannerGen
		return tea.Tick(bannerDuration, func(time.Time) tea.Msg { return bannerDoneMsg{gen: gen} })

	case events.AchievementPayload:
		return a.showToast(fmt.Sprintf("%s Achievement unlocked: %s", p.Icon, p.Name))

	case events.PersistFailedPayload:
		return a.showToast("Could not save: " + p.Err.Error())

	case events.TimerPayload:
		return a.showToast(fmt.Sprintf("%s finished. Time for a %s!", p.From, p.To))

	case events.NoticePayload:
		return a.showToast(p.Text)
	}
	return nil
}

func (a *App) showToast(text string) tea.Cmd {
	a.toast = text
	a.toastGen++
	gen := a.toastGen
	return tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastDoneMsg{gen: gen} })
}

// restartTicks invalidates any pending tick and, for a running timer,
// schedules a fresh one.
func (a *App) restartTicks() tea.Cmd {
	a.timerGen++
	if !a.timer.Active() {
		return nil
	}
	return a.scheduleTick()
}

func (a *App) scheduleTick() tea.Cmd {
	gen := a.timerGen
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return timerTickMsg{gen: gen} })
}

func (a *App) tickTimer(gen int) tea.Cmd {
	if gen != a.timerGen || !a.timer.Active() {
		return nil
	}
	if f, ok := a.timer.Tick(); ok && a.bus != nil {
		a.bus.Publish(events.TimerFinished, events.TimerPayload{From: f.From.Label(), To: f.To.Label()})
	}
	return a.scheduleTick()
}

func nextMode(m pomodoro.Mode) pomodoro.Mode {
	switch m {
	case pomodoro.Focus:
		return pomodoro.Break
	case pomodoro.Break:
		return pomodoro.LongBreak
	}
	return pomodoro.Focus
}

func (a *App) toggleTheme() {
	dark := !styles.Current.Dark
	styles.SetDark(dark)
	if a.env.Prefs != nil {
		if err := a.env.Prefs.SetDark(dark); err != nil {
			logger.Warn("ui: save theme failed", zap.Error(err))
		}
	}
	a.styles = styles.NewStyles()
	a.board.Restyle()
	a.projects.Restyle()
	a.templates.Restyle()
	a.achievements.Restyle()
	if a.taskForm != nil {
		a.taskForm.Restyle()
	}
}

func (a *App) View() string {
	var body string
	switch a.currentView {
	case ViewProjects:
		body = a.projects.View()
	case ViewTaskForm:
		if a.taskForm != nil {
			body = a.taskForm.View()
		}
	case ViewTemplates:
		body = a.templates.View()
	case ViewAchievements:
		body = a.achievements.View()
	default:
		body = a.board.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.renderNotice(), body, a.renderStatusBar())
}

func (a *App) renderNotice() string {
	switch {
	case a.banner != "":
		return a.styles.Banner.Render(a.banner)
	case a.toast != "":
		return a.styles.Toast.Render(a.toast)
	}
	return ""
}

func (a *App) renderStatusBar() string {
	state := "⏸"
	if a.timer.Active() {
		state = "▶"
	}
	timer := fmt.Sprintf("🍅 %s %s %s", a.timer.Mode().Label(), a.timer.Format(), state)
	if a.timer.Mode() == pomodoro.Focus && a.timer.Active() {
		timer += fmt.Sprintf(" %.0f%%", a.timer.Progress())
	}
	return a.styles.StatusBar.Render(timer + "  •  ctrl+t start/pause • ctrl+b mode • ctrl+r reset")
}
