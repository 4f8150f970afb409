package console

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/registryops/console-gateway/internal/bus"
	"github.com/registryops/console-gateway/internal/core/domain"
	"github.com/registryops/console-gateway/internal/pkg/metrics"
)

// SearchFunc performs a global search against the registry core.
type SearchFunc func(ctx context.Context, term string) (*domain.SearchResults, error)

// SearchCoordinator drives the global search box. Raw keystrokes go through
// the debouncer; only a term stable for the quiet window and different from
// the last delivered one is published on the trigger channel and dispatched.
//
// Responses overwrite the displayed results in arrival order with no
// request-generation check, so a stale response that arrives after a newer
// request has already answered wins.
type SearchCoordinator struct {
	deb       *bus.Debouncer
	trigger   *bus.Channel[string]
	closeChan *bus.Channel[struct{}]
	closeSub  *bus.Subscription[struct{}]
	search    SearchFunc
	log       zerolog.Logger

	mu      sync.Mutex
	term    string
	results *domain.SearchResults
}

// NewSearchCoordinator builds the pipeline. Call Start before feeding input
// and Stop when the shell shuts down.
func NewSearchCoordinator(hub *bus.Hub, window time.Duration, clock bus.Clock, search SearchFunc, log zerolog.Logger) *SearchCoordinator {
	c := &SearchCoordinator{
		trigger:   hub.SearchTrigger,
		closeChan: hub.SearchClose,
		search:    search,
		log:       log,
	}
	c.deb = bus.NewDebouncer(window, clock, c.dispatch)
	c.closeSub = c.closeChan.Subscribe(func(struct{}) { c.clearDisplay() })
	return c
}

// Start launches the debounce loop.
func (c *SearchCoordinator) Start() { c.deb.Start() }

// Stop terminates the debounce loop and detaches from the close channel.
func (c *SearchCoordinator) Stop() {
	c.deb.Stop()
	c.closeSub.Unsubscribe()
}

// Input feeds one keystroke's worth of search text into the pipeline.
func (c *SearchCoordinator) Input(term string) { c.deb.Input(term) }

// CloseSearch tells subscribers to hide the search panel. The coordinator is
// its own first subscriber and drops the displayed results.
func (c *SearchCoordinator) CloseSearch() {
	c.closeChan.Publish(struct{}{})
}

func (c *SearchCoordinator) clearDisplay() {
	c.mu.Lock()
	c.term = ""
	c.results = nil
	c.mu.Unlock()
}

// Results returns the currently displayed term and result set.
func (c *SearchCoordinator) Results() (string, *domain.SearchResults) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.term, c.results
}

func (c *SearchCoordinator) dispatch(term string) {
	c.trigger.Publish(term)

	// No cancellation of the previous in-flight request and no timeout:
	// whichever response lands last is displayed.
	go func() {
		results, err := c.search(context.Background(), term)
		if err != nil {
			metrics.SearchDispatchTotal.WithLabelValues("error").Inc()
			c.log.Debug().Err(err).Str("term", term).Msg("search request failed")
			return
		}
		metrics.SearchDispatchTotal.WithLabelValues("applied").Inc()

		c.mu.Lock()
		c.term = term
		c.results = results
		c.mu.Unlock()
	}()
}
