// Package notify holds the in-memory queue of transient achievement banners
// and XP toasts. Nothing here is persisted.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orkadia/orkadia/pkg/domain"
)

// Kind selects the surface an event is rendered on.
type Kind string

const (
	KindAchievement Kind = "achievement"
	KindXP          Kind = "xp"
)

// Display timings.
const (
	AchievementVisible = 5000 * time.Millisecond
	XPVisible          = 3000 * time.Millisecond
	ExitDuration       = 300 * time.Millisecond
)

// StackOffset is the vertical distance, in terminal rows, between stacked surfaces.
const StackOffset = 4

// Event is one pending banner or toast.
type Event struct {
	ID          uuid.UUID
	Kind        Kind
	UserID      uuid.UUID
	Title       string
	Description string
	Points      int
	Rarity      domain.Rarity
	Icon        string
	ShownAt     time.Time
}

// Visible is how long the event stays fully shown before its exit transition.
func (e Event) Visible() time.Duration {
	if e.Kind == KindXP {
		return XPVisible
	}
	return AchievementVisible
}

// Deadline is the instant the event leaves the queue on its own.
func (e Event) Deadline() time.Time {
	return e.ShownAt.Add(e.Visible() + ExitDuration)
}

// Phase is where an event is in its lifecycle.
type Phase int

const (
	PhaseVisible Phase = iota
	PhaseExiting
	PhaseGone
)

// PhaseAt returns the event's phase at now.
func (e Event) PhaseAt(now time.Time) Phase {
	switch {
	case now.Before(e.ShownAt.Add(e.Visible())):
		return PhaseVisible
	case now.Before(e.Deadline()):
		return PhaseExiting
	default:
		return PhaseGone
	}
}

// Notifier receives events. Implementations must not block.
type Notifier interface {
	Notify(e Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(e Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

// Discard drops every event.
var Discard Notifier = NotifierFunc(func(Event) {})

// ForUser forwards only events addressed to viewer. Grants made to other
// users, such as an inviter's milestone, stay off the viewer's screen.
func ForUser(viewer uuid.UUID, next Notifier) Notifier {
	return NotifierFunc(func(e Event) {
		if e.UserID == viewer {
			next.Notify(e)
		}
	})
}

// Queue is the ordered sequence of pending events. Safe for concurrent use.
type Queue struct {
	mu     sync.Mutex
	now    func() time.Time
	events []Event
}

// NewQueue creates an empty queue. now defaults to time.Now.
func NewQueue(now func() time.Time) *Queue {
	if now == nil {
		now = time.Now
	}
	return &Queue{now: now}
}

// Show appends e, stamping its ID and ShownAt when unset, and returns the stored event.
func (q *Queue) Show(e Event) Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.ShownAt.IsZero() {
		e.ShownAt = q.now()
	}
	q.events = append(q.events, e)
	return e
}

// Notify implements Notifier.
func (q *Queue) Notify(e Event) { q.Show(e) }

// Remove dismisses an event early. It reports whether the event was pending.
func (q *Queue) Remove(id uuid.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, e := range q.events {
		if e.ID == id {
			q.events = append(q.events[:i], q.events[i+1:]...)
			return true
		}
	}
	return false
}

// Sweep drops every event whose deadline has passed and returns how many it dropped.
func (q *Queue) Sweep() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	now := q.now()
	kept := q.events[:0]
	for _, e := range q.events {
		if e.PhaseAt(now) != PhaseGone {
			kept = append(kept, e)
		}
	}
	dropped := len(q.events) - len(kept)
	for i := len(kept); i < len(q.events); i++ {
		q.events[i] = Event{}
	}
	q.events = kept
	return dropped
}

// Pending returns a copy of the queued events in display order.
func (q *Queue) Pending() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Event, len(q.events))
	copy(out, q.events)
	return out
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Now returns the queue's clock reading.
func (q *Queue) Now() time.Time {
	return q.now()
}

// Offset is the vertical position of the i-th stacked surface.
func Offset(i int) int {
	return i * StackOffset
}
