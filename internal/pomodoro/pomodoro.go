// Package pomodoro is the focus/break countdown. The timer does not run by
// itself: the caller ticks it once per second.
package pomodoro

import (
	"fmt"
	"time"
)

type Mode string

const (
	Focus     Mode = "focus"
	Break     Mode = "break"
	LongBreak Mode = "longBreak"
)

// Label is the human name of the mode
func (m Mode) Label() string {
	switch m {
	case Break:
		return "Short Break"
	case LongBreak:
		return "Long Break"
	}
	return "Focus Session"
}

// Durations of each mode
type Durations struct {
	Focus     time.Duration
	Break     time.Duration
	LongBreak time.Duration
}

func DefaultDurations() Durations {
	return Durations{
		Focus:     25 * time.Minute,
		Break:     5 * time.Minute,
		LongBreak: 15 * time.Minute,
	}
}

func (d Durations) of(m Mode) time.Duration {
	switch m {
	case Break:
		return d.Break
	case LongBreak:
		return d.LongBreak
	}
	return d.Focus
}

// Finished reports a completed session and the mode that follows it
type Finished struct {
	From Mode
	To   Mode
}

type Timer struct {
	durations Durations
	mode      Mode
	remaining time.Duration
	active    bool
}

// New returns an inactive focus timer. Zero durations fall back to the
// defaults.
func New(d Durations) *Timer {
	def := DefaultDurations()
	if d.Focus <= 0 {
		d.Focus = def.Focus
	}
	if d.Break <= 0 {
		d.Break = def.Break
	}
	if d.LongBreak <= 0 {
		d.LongBreak = def.LongBreak
	}
	return &Timer{durations: d, mode: Focus, remaining: d.Focus}
}

func (t *Timer) Mode() Mode               { return t.mode }
func (t *Timer) Remaining() time.Duration { return t.remaining }
func (t *Timer) Active() bool             { return t.active }
func (t *Timer) Durations() Durations     { return t.durations }

func (t *Timer) Start() { t.active = true }
func (t *Timer) Pause() { t.active = false }

// Toggle starts a paused timer or pauses a running one
func (t *Timer) Toggle() {
	t.active = !t.active
}

// Reset goes back to an inactive, full focus session
func (t *Timer) Reset() {
	t.active = false
	t.mode = Focus
	t.remaining = t.durations.Focus
}

// Switch stops the timer and loads the full time of mode
func (t *Timer) Switch(mode Mode) {
	t.active = false
	t.mode = mode
	t.remaining = t.durations.of(mode)
}

// Tick advances an active timer by one second. When the session ends the
// timer moves on to the next mode (focus to break, any break to focus),
// keeps running, and reports the change.
func (t *Timer) Tick() (Finished, bool) {
	if !t.active {
		return Finished{}, false
	}
	if t.remaining > time.Second {
		t.remaining -= time.Second
		return Finished{}, false
	}

	from := t.mode
	to := Focus
	if from == Focus {
		to = Break
	}
	t.mode = to
	t.remaining = t.durations.of(to)
	return Finished{From: from, To: to}, true
}

// Progress is the percentage of the focus length already elapsed
func (t *Timer) Progress() float64 {
	focus := t.durations.Focus
	return float64(focus-t.remaining) / float64(focus) * 100
}

// Format renders the remaining time as MM:SS
func (t *Timer) Format() string {
	secs := int(t.remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
