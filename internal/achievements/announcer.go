package achievements

import (
	"sync"
	"time"

	"github.com/tgienger/taskboard/internal/events"
	"github.com/tgienger/taskboard/internal/models"
	"github.com/tgienger/taskboard/internal/persist"
)

// Announcer publishes AchievementUnlocked once per badge. While the
// celebration signal is active new badges wait in a queue and are released
// when it turns off, so the two celebrations never overlap.
type Announcer struct {
	mu         sync.Mutex
	bus        *events.Bus
	celebrate  *events.Signal[bool]
	prefs      *persist.Preferences
	earned     map[string]bool
	celebrated map[string]bool
	queue      []Rule
	unwatch    func()
}

// NewAnnouncer primes the announcer with the badges already earned in
// initial, so starting the app does not replay them. prefs may be nil.
func NewAnnouncer(bus *events.Bus, celebrate *events.Signal[bool], prefs *persist.Preferences, initial models.State, now time.Time) *Announcer {
	a := &Announcer{
		bus:        bus,
		celebrate:  celebrate,
		prefs:      prefs,
		earned:     make(map[string]bool),
		celebrated: make(map[string]bool),
	}
	if prefs != nil {
		for _, id := range prefs.Celebrated() {
			// ids of retired badges are dropped
			if _, ok := Lookup(id); ok {
				a.celebrated[id] = true
			}
		}
	}
	for _, r := range Earned(initial, now) {
		a.earned[r.ID] = true
	}
	if celebrate != nil {
		a.unwatch = celebrate.Watch(func(active bool) {
			if !active {
				a.Flush()
			}
		})
	}
	return a
}

// Attach re-evaluates the rules after every state change on the bus
func (a *Announcer) Attach(state func() models.State, now func() time.Time) func() {
	return a.bus.Subscribe(events.StateChanged, func(events.Event) {
		a.Observe(state(), now())
	})
}

// Observe announces badges that s earns for the first time and returns
// them. Badges found during a celebration are queued and nil is returned.
func (a *Announcer) Observe(s models.State, now time.Time) []Rule {
	a.mu.Lock()
	current := make(map[string]bool)
	var fresh []Rule
	for _, r := range Earned(s, now) {
		current[r.ID] = true
		if !a.earned[r.ID] && !a.celebrated[r.ID] {
			fresh = append(fresh, r)
		}
	}
	// Badges can be lost (a task reopened) and earned again later
	a.earned = current

	if len(fresh) == 0 {
		a.mu.Unlock()
		return nil
	}
	if a.celebrate != nil && a.celebrate.Get() {
		a.queue = append(a.queue, fresh...)
		a.mu.Unlock()
		return nil
	}
	a.mu.Unlock()

	a.announce(fresh)
	return fresh
}

// Flush announces everything queued
func (a *Announcer) Flush() []Rule {
	a.mu.Lock()
	queued := a.queue
	a.queue = nil
	a.mu.Unlock()

	a.announce(queued)
	return queued
}

// Pending returns the number of queued badges
func (a *Announcer) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.queue)
}

func (a *Announcer) Close() {
	if a.unwatch != nil {
		a.unwatch()
	}
}

func (a *Announcer) announce(rules []Rule) {
	if len(rules) == 0 {
		return
	}

	ids := make([]string, 0, len(rules))
	a.mu.Lock()
	for _, r := range rules {
		a.celebrated[r.ID] = true
		ids = append(ids, r.ID)
	}
	a.mu.Unlock()

	if a.prefs != nil {
		// Losing the celebrated set only means a badge may be shown twice
		_ = a.prefs.MarkCelebrated(ids...)
	}
	if a.bus == nil {
		return
	}
	for _, r := range rules {
		a.bus.Publish(events.AchievementUnlocked, events.AchievementPayload{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Icon:        r.Icon,
		})
	}
}
