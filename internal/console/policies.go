package console

import (
	"context"
	"sync"

	"github.com/registryops/console-gateway/internal/bus"
	"github.com/registryops/console-gateway/internal/core/domain"
)

// PolicyLister fetches replication policies from the registry core.
type PolicyLister func(ctx context.Context, name string) ([]domain.Policy, error)

// PolicyView serves the unfiltered policy list from a one-shot cache that is
// invalidated whenever a reload signal lands on the bus. Name-filtered
// listings bypass the cache entirely.
type PolicyView struct {
	list PolicyLister
	sub  *bus.Subscription[struct{}]

	mu     sync.Mutex
	cached []domain.Policy
	valid  bool
}

// NewPolicyView subscribes to the hub's policy-reload channel.
func NewPolicyView(hub *bus.Hub, list PolicyLister) *PolicyView {
	v := &PolicyView{list: list}
	v.sub = hub.PolicyReload.Subscribe(func(struct{}) { v.invalidate() })
	return v
}

// List returns the policies, from cache when possible. A non-empty name always
// goes to the core.
func (v *PolicyView) List(ctx context.Context, name string) ([]domain.Policy, error) {
	if name != "" {
		return v.list(ctx, name)
	}

	v.mu.Lock()
	if v.valid {
		policies := v.cached
		v.mu.Unlock()
		return policies, nil
	}
	v.mu.Unlock()

	policies, err := v.list(ctx, "")
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	v.cached = policies
	v.valid = true
	v.mu.Unlock()
	return policies, nil
}

func (v *PolicyView) invalidate() {
	v.mu.Lock()
	v.cached = nil
	v.valid = false
	v.mu.Unlock()
}

// Close detaches the view from the reload channel.
func (v *PolicyView) Close() {
	v.sub.Unsubscribe()
}
