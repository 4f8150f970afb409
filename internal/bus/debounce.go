package bus

import "time"

// Debouncer coalesces rapid input: a term is forwarded downstream only once
// it has been stable for the quiet window, and only if it differs from the
// last forwarded term. Superseded terms are dropped without being sent.
type Debouncer struct {
	window time.Duration
	clock  Clock
	out    func(string)

	in   chan string
	done chan struct{}
}

// NewDebouncer creates a debouncer delivering stable terms to out. Call Start
// before feeding input and Stop when finished.
func NewDebouncer(window time.Duration, clock Clock, out func(string)) *Debouncer {
	if clock == nil {
		clock = RealClock{}
	}
	return &Debouncer{
		window: window,
		clock:  clock,
		out:    out,
		in:     make(chan string),
		done:   make(chan struct{}),
	}
}

// Start launches the debounce loop.
func (d *Debouncer) Start() {
	go d.loop()
}

// Stop terminates the loop. Input after Stop is discarded.
func (d *Debouncer) Stop() {
	close(d.done)
}

// Input records a new term and restarts the quiet window.
func (d *Debouncer) Input(term string) {
	select {
	case d.in <- term:
	case <-d.done:
	}
}

func (d *Debouncer) loop() {
	var (
		timer   Timer
		timerC  <-chan time.Time
		pending string
		last    string
		hasLast bool
	)

	for {
		select {
		case term := <-d.in:
			pending = term
			if timer != nil {
				timer.Stop()
			}
			timer = d.clock.NewTimer(d.window)
			timerC = timer.C()

		case <-timerC:
			timer, timerC = nil, nil
			if hasLast && pending == last {
				continue
			}
			last, hasLast = pending, true
			d.out(pending)

		case <-d.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}
