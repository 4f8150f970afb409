package console

import (
	"sync"
	"time"

	"github.com/registryops/console-gateway/internal/bus"
	"github.com/registryops/console-gateway/internal/core/domain"
)

// Banner renders the latest message from one message channel. When
// autoDismiss is non-zero each received message starts a one-shot timer that
// closes the banner after the interval; this is local presentation state,
// not part of the channel contract. The app-level banner passes zero and
// stays up until Dismiss is called.
type Banner struct {
	autoDismiss time.Duration
	clock       bus.Clock
	sub         *bus.Subscription[domain.Message]

	mu      sync.Mutex
	current domain.Message
	visible bool
	gen     int
}

// NewBanner subscribes to ch. A zero autoDismiss disables the timer.
func NewBanner(ch *bus.Channel[domain.Message], autoDismiss time.Duration, clock bus.Clock) *Banner {
	if clock == nil {
		clock = bus.RealClock{}
	}
	b := &Banner{autoDismiss: autoDismiss, clock: clock}
	b.sub = ch.Subscribe(b.handleMessage)
	return b
}

func (b *Banner) handleMessage(msg domain.Message) {
	b.mu.Lock()
	b.current = msg
	b.visible = true
	b.gen++
	gen := b.gen
	b.mu.Unlock()

	if b.autoDismiss <= 0 {
		return
	}

	t := b.clock.NewTimer(b.autoDismiss)
	go func() {
		<-t.C()
		b.mu.Lock()
		// A newer message restarted the countdown; leave it alone.
		if b.gen == gen {
			b.visible = false
		}
		b.mu.Unlock()
	}()
}

// Current returns the last received message and whether it is still visible.
func (b *Banner) Current() (domain.Message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current, b.visible
}

// Dismiss hides the banner immediately.
func (b *Banner) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.visible = false
}

// Close detaches the banner from its channel.
func (b *Banner) Close() {
	b.sub.Unsubscribe()
}
