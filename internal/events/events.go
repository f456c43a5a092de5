// Package events is the typed in-process event bus shared by the store, the
// achievement announcer and the UI.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies what happened
type Kind int

const (
	StateChanged Kind = iota
	TaskCompleted
	PersistFailed
	Celebration
	AchievementUnlocked
	TimerFinished
	Notice
)

func (k Kind) String() string {
	switch k {
	case StateChanged:
		return "state_changed"
	case TaskCompleted:
		return "task_completed"
	case PersistFailed:
		return "persist_failed"
	case Celebration:
		return "celebration"
	case AchievementUnlocked:
		return "achievement_unlocked"
	case TimerFinished:
		return "timer_finished"
	case Notice:
		return "notice"
	}
	return "unknown"
}

// Event is a single published occurrence. Payload holds one of the
// *Payload types below, matching Kind.
type Event struct {
	ID      uuid.UUID
	Kind    Kind
	At      time.Time
	Payload any
}

type StateChangedPayload struct {
	Command string
}

type TaskCompletedPayload struct {
	TaskID int64
	Title  string
}

type PersistFailedPayload struct {
	Err error
}

type CelebrationPayload struct {
	Active bool
}

type AchievementPayload struct {
	ID          string
	Name        string
	Description string
	Icon        string
}

type TimerPayload struct {
	From string
	To   string
}

type NoticePayload struct {
	Text string
}
