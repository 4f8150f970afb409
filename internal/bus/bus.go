// Package bus provides the in-process event channels that decouple
// independent console widgets: a synchronous multicast primitive, the named
// channel set, and a debouncer for coalescing rapid input.
package bus

import "sync"

// Channel is a named multicast publish/subscribe primitive. Publish delivers
// synchronously to every subscriber registered at call time, in registration
// order. There is no buffering and no replay: subscribers registered after a
// publish never see it.
type Channel[T any] struct {
	name string

	mu   sync.Mutex
	subs []*Subscription[T]
}

// Subscription is the handle returned by Subscribe. Unsubscribe stops all
// further deliveries to the handler.
type Subscription[T any] struct {
	ch      *Channel[T]
	handler func(T)
}

// NewChannel creates an empty channel with the given name.
func NewChannel[T any](name string) *Channel[T] {
	return &Channel[T]{name: name}
}

// Name returns the channel name.
func (c *Channel[T]) Name() string { return c.name }

// Publish invokes every currently-registered handler once, synchronously, in
// registration order. Handlers registered or removed by another goroutine
// after the subscriber snapshot is taken do not affect this delivery.
func (c *Channel[T]) Publish(msg T) {
	c.mu.Lock()
	snapshot := make([]*Subscription[T], len(c.subs))
	copy(snapshot, c.subs)
	c.mu.Unlock()

	for _, s := range snapshot {
		s.handler(msg)
	}
}

// Subscribe registers handler and returns its subscription handle.
func (c *Channel[T]) Subscribe(handler func(T)) *Subscription[T] {
	s := &Subscription[T]{ch: c, handler: handler}
	c.mu.Lock()
	c.subs = append(c.subs, s)
	c.mu.Unlock()
	return s
}

// Unsubscribe removes the handler. Safe to call more than once.
func (s *Subscription[T]) Unsubscribe() {
	c := s.ch
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, sub := range c.subs {
		if sub == s {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			return
		}
	}
}
