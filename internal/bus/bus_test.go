package bus

import (
	"testing"

	"github.com/registryops/console-gateway/internal/core/domain"
)

func TestChannel_DeliversInRegistrationOrder(t *testing.T) {
	ch := NewChannel[string]("test")

	var order []string
	ch.Subscribe(func(msg string) { order = append(order, "first:"+msg) })
	ch.Subscribe(func(msg string) { order = append(order, "second:"+msg) })
	ch.Subscribe(func(msg string) { order = append(order, "third:"+msg) })

	ch.Publish("m")

	want := []string{"first:m", "second:m", "third:m"}
	if len(order) != len(want) {
		t.Fatalf("expected %d deliveries, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("delivery %d: expected %q, got %q", i, want[i], order[i])
		}
	}
}

func TestChannel_NoReplayToLateSubscribers(t *testing.T) {
	ch := NewChannel[int]("test")

	ch.Publish(1)

	got := 0
	ch.Subscribe(func(msg int) { got++ })

	if got != 0 {
		t.Fatalf("late subscriber received %d buffered messages, expected none", got)
	}

	ch.Publish(2)
	if got != 1 {
		t.Fatalf("expected exactly one delivery after subscribing, got %d", got)
	}
}

func TestChannel_UnsubscribeStopsDelivery(t *testing.T) {
	ch := NewChannel[int]("test")

	var a, b int
	subA := ch.Subscribe(func(int) { a++ })
	ch.Subscribe(func(int) { b++ })

	ch.Publish(1)
	subA.Unsubscribe()
	ch.Publish(2)

	if a != 1 {
		t.Fatalf("unsubscribed handler received %d calls, expected 1", a)
	}
	if b != 2 {
		t.Fatalf("remaining handler received %d calls, expected 2", b)
	}
}

func TestChannel_UnsubscribeTwiceIsSafe(t *testing.T) {
	ch := NewChannel[int]("test")
	sub := ch.Subscribe(func(int) {})
	sub.Unsubscribe()
	sub.Unsubscribe()

	calls := 0
	ch.Subscribe(func(int) { calls++ })
	ch.Publish(1)
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestHub_MessageChannelsAreIndependent(t *testing.T) {
	hub := NewHub()

	general, app := 0, 0
	hub.Messages.Subscribe(func(domain.Message) { general++ })
	hub.AppMessages.Subscribe(func(domain.Message) { app++ })

	hub.Messages.Publish(domain.Message{Text: "page-level"})

	if general != 1 {
		t.Fatalf("general channel received %d calls, expected 1", general)
	}
	if app != 0 {
		t.Fatalf("app-level channel received %d calls, expected 0", app)
	}
}
