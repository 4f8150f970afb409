package bus

import (
	"testing"
	"time"
)

// fakeClock hands out manually-fired timers so the quiet window can be
// driven deterministically.
type fakeClock struct {
	created chan *fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{created: make(chan *fakeTimer, 16)}
}

func (c *fakeClock) Now() time.Time { return time.Time{} }

func (c *fakeClock) NewTimer(time.Duration) Timer {
	t := &fakeTimer{c: make(chan time.Time, 1)}
	c.created <- t
	return t
}

type fakeTimer struct {
	c       chan time.Time
	stopped bool
}

func (t *fakeTimer) Stop() bool          { t.stopped = true; return true }
func (t *fakeTimer) C() <-chan time.Time { return t.c }

func (c *fakeClock) next(t *testing.T) *fakeTimer {
	t.Helper()
	select {
	case tm := <-c.created:
		return tm
	case <-time.After(time.Second):
		t.Fatalf("no timer created")
		return nil
	}
}

func collect(out chan string, d time.Duration) []string {
	var got []string
	for {
		select {
		case term := <-out:
			got = append(got, term)
		case <-time.After(d):
			return got
		}
	}
}

func TestDebouncer_ForwardsOnlyLastStableTerm(t *testing.T) {
	clock := newFakeClock()
	out := make(chan string, 16)
	deb := NewDebouncer(300*time.Millisecond, clock, func(term string) { out <- term })
	deb.Start()
	defer deb.Stop()

	// Three keystrokes inside the quiet window: each restarts the timer.
	deb.Input("a")
	t1 := clock.next(t)
	deb.Input("ab")
	t2 := clock.next(t)
	deb.Input("abc")
	t3 := clock.next(t)

	if !t1.stopped || !t2.stopped {
		t.Fatalf("superseded timers were not stopped")
	}

	t3.c <- time.Time{}

	got := collect(out, 100*time.Millisecond)
	if len(got) != 1 || got[0] != "abc" {
		t.Fatalf("expected exactly one delivery of %q, got %v", "abc", got)
	}
}

func TestDebouncer_SuppressesUnchangedTerm(t *testing.T) {
	clock := newFakeClock()
	out := make(chan string, 16)
	deb := NewDebouncer(300*time.Millisecond, clock, func(term string) { out <- term })
	deb.Start()
	defer deb.Stop()

	deb.Input("abc")
	clock.next(t).c <- time.Time{}

	if got := collect(out, 100*time.Millisecond); len(got) != 1 {
		t.Fatalf("expected first delivery, got %v", got)
	}

	// Same term again after quiescence: must not be re-forwarded.
	deb.Input("abc")
	clock.next(t).c <- time.Time{}

	if got := collect(out, 100*time.Millisecond); len(got) != 0 {
		t.Fatalf("unchanged term was re-forwarded: %v", got)
	}
}

func TestDebouncer_ForwardsDistinctTermsInSequence(t *testing.T) {
	clock := newFakeClock()
	out := make(chan string, 16)
	deb := NewDebouncer(300*time.Millisecond, clock, func(term string) { out <- term })
	deb.Start()
	defer deb.Stop()

	deb.Input("first")
	clock.next(t).c <- time.Time{}
	deb.Input("second")
	clock.next(t).c <- time.Time{}

	got := collect(out, 100*time.Millisecond)
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("expected [first second], got %v", got)
	}
}
