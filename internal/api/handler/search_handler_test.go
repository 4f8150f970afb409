package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/registryops/console-gateway/internal/bus"
	"github.com/registryops/console-gateway/internal/console"
	"github.com/registryops/console-gateway/internal/core/domain"
)

type searchFixture struct {
	echo    *echo.Echo
	handler *SearchHandler
	search  *console.SearchCoordinator
	queried *[]string
}

// A short debounce window lets the term settle quickly while staying long
// enough that the feeding request observes the display before it updates.
func newSearchHandlerFixture(t *testing.T) *searchFixture {
	t.Helper()
	hub := bus.NewHub()
	var queried []string
	searchFn := func(_ context.Context, term string) (*domain.SearchResults, error) {
		queried = append(queried, term)
		return &domain.SearchResults{
			Repositories: []domain.SearchHit{{Name: term + "/repo"}},
		}, nil
	}
	search := console.NewSearchCoordinator(hub, 50*time.Millisecond, nil, searchFn, zerolog.Nop())
	search.Start()
	t.Cleanup(search.Stop)

	return &searchFixture{
		echo:    newEcho(),
		handler: NewSearchHandler(search),
		search:  search,
		queried: &queried,
	}
}

func (f *searchFixture) query(t *testing.T, target string) (*httptest.ResponseRecorder, searchResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)
	if err := f.handler.Query(c); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	var resp searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rec, resp
}

func (f *searchFixture) waitDisplayed(t *testing.T, want string) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if term, _ := f.search.Results(); term == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	term, _ := f.search.Results()
	t.Fatalf("displayed term is %q, wanted %q", term, want)
}

func TestSearchQuery_FeedsPipelineAndReturnsDisplayState(t *testing.T) {
	f := newSearchHandlerFixture(t)

	// First request feeds the term; the display still lags behind.
	rec, resp := f.query(t, "/api/search?q=library")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp.Term != "" || resp.Results != nil {
		t.Fatalf("display must lag the input, got %+v", resp)
	}

	f.waitDisplayed(t, "library")

	// A later poll sees the settled result.
	_, resp = f.query(t, "/api/search?q=library")
	if resp.Term != "library" {
		t.Fatalf("expected displayed term library, got %q", resp.Term)
	}
	if resp.Results == nil || resp.Results.Repositories[0].Name != "library/repo" {
		t.Fatalf("unexpected results: %+v", resp.Results)
	}
}

func TestSearchQuery_EmptyTermIsAPollNotAKeystroke(t *testing.T) {
	f := newSearchHandlerFixture(t)

	_, resp := f.query(t, "/api/search")
	if resp.Term != "" {
		t.Fatalf("expected empty display, got %q", resp.Term)
	}

	// Give the debouncer a moment; nothing must have been dispatched.
	time.Sleep(20 * time.Millisecond)
	if len(*f.queried) != 0 {
		t.Fatalf("empty query must not dispatch a search, got %v", *f.queried)
	}
}

func TestSearchClose_DropsDisplayedResults(t *testing.T) {
	f := newSearchHandlerFixture(t)

	f.query(t, "/api/search?q=library")
	f.waitDisplayed(t, "library")

	req := httptest.NewRequest(http.MethodDelete, "/api/search", nil)
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)
	if err := f.handler.Close(c); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	_, resp := f.query(t, "/api/search")
	if resp.Term != "" || resp.Results != nil {
		t.Fatalf("closed search must show nothing, got %+v", resp)
	}
}
