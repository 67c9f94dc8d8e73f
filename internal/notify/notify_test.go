package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestAchievementBannerLifecycle(t *testing.T) {
	clk := newClock()
	q := NewQueue(clk.Now)
	e := q.Show(Event{Kind: KindAchievement, Title: "Writer"})

	steps := []struct {
		at    time.Duration
		phase Phase
		len   int
	}{
		{0, PhaseVisible, 1},
		{4999 * time.Millisecond, PhaseVisible, 1},
		{5000 * time.Millisecond, PhaseExiting, 1},
		{5299 * time.Millisecond, PhaseExiting, 1},
		{5300 * time.Millisecond, PhaseGone, 0},
	}
	var elapsed time.Duration
	for _, s := range steps {
		clk.Advance(s.at - elapsed)
		elapsed = s.at
		if got := e.PhaseAt(clk.Now()); got != s.phase {
			t.Errorf("t=%v phase = %v, want %v", s.at, got, s.phase)
		}
		q.Sweep()
		if got := q.Len(); got != s.len {
			t.Errorf("t=%v Len() = %d, want %d", s.at, got, s.len)
		}
	}
}

func TestXPToastLifecycle(t *testing.T) {
	clk := newClock()
	q := NewQueue(clk.Now)
	q.Show(Event{Kind: KindXP, Points: 50})

	clk.Advance(3299 * time.Millisecond)
	if n := q.Sweep(); n != 0 {
		t.Errorf("Sweep() at 3299ms dropped %d, want 0", n)
	}
	clk.Advance(time.Millisecond)
	if n := q.Sweep(); n != 1 {
		t.Errorf("Sweep() at 3300ms dropped %d, want 1", n)
	}
}

func TestRemoveEarly(t *testing.T) {
	q := NewQueue(newClock().Now)
	a := q.Show(Event{Kind: KindAchievement, Title: "a"})
	b := q.Show(Event{Kind: KindXP, Title: "b"})
	c := q.Show(Event{Kind: KindAchievement, Title: "c"})

	if !q.Remove(b.ID) {
		t.Fatal("Remove(b) = false, want true")
	}
	if q.Remove(b.ID) {
		t.Error("second Remove(b) = true, want false")
	}
	if q.Remove(uuid.New()) {
		t.Error("Remove(unknown) = true, want false")
	}
	got := q.Pending()
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != c.ID {
		t.Errorf("Pending() = %+v, want [a c]", got)
	}
}

func TestSweepKeepsOrder(t *testing.T) {
	clk := newClock()
	q := NewQueue(clk.Now)
	q.Show(Event{Kind: KindXP, Title: "xp"})
	clk.Advance(time.Second)
	q.Show(Event{Kind: KindAchievement, Title: "first"})
	q.Show(Event{Kind: KindAchievement, Title: "second"})

	clk.Advance(2500 * time.Millisecond) // xp deadline passed
	if n := q.Sweep(); n != 1 {
		t.Fatalf("Sweep() dropped %d, want 1", n)
	}
	got := q.Pending()
	if len(got) != 2 || got[0].Title != "first" || got[1].Title != "second" {
		t.Errorf("Pending() = %+v", got)
	}
}

func TestShowStampsEvent(t *testing.T) {
	clk := newClock()
	q := NewQueue(clk.Now)
	e := q.Show(Event{Kind: KindAchievement})
	if e.ID == uuid.Nil {
		t.Error("ID not assigned")
	}
	if !e.ShownAt.Equal(clk.Now()) {
		t.Errorf("ShownAt = %v, want %v", e.ShownAt, clk.Now())
	}
}

func TestOffset(t *testing.T) {
	for i := 0; i < 4; i++ {
		if got := Offset(i); got != i*StackOffset {
			t.Errorf("Offset(%d) = %d, want %d", i, got, i*StackOffset)
		}
	}
}

func TestForUser(t *testing.T) {
	viewer := uuid.New()
	q := NewQueue(newClock().Now)
	n := ForUser(viewer, q)

	n.Notify(Event{UserID: viewer, Title: "mine"})
	n.Notify(Event{UserID: uuid.New(), Title: "inviter's"})
	got := q.Pending()
	if len(got) != 1 || got[0].Title != "mine" {
		t.Errorf("Pending() = %+v, want only the viewer's event", got)
	}
}

func TestConcurrentShow(t *testing.T) {
	q := NewQueue(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Notify(Event{Kind: KindXP})
		}()
	}
	wg.Wait()
	if got := q.Len(); got != 50 {
		t.Errorf("Len() = %d, want 50", got)
	}
}
