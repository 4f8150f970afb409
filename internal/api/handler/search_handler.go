package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/registryops/console-gateway/internal/console"
	"github.com/registryops/console-gateway/internal/core/domain"
)

// SearchHandler exposes the debounced search pipeline. Each request feeds the
// query through the quiet-window debouncer and returns the currently displayed
// result set, which lags the input by at least one window. This mirrors the
// search box: keystrokes in, display state out.
type SearchHandler struct {
	search *console.SearchCoordinator
}

func NewSearchHandler(search *console.SearchCoordinator) *SearchHandler {
	return &SearchHandler{search: search}
}

type searchResponse struct {
	Term    string                `json:"term"`
	Results *domain.SearchResults `json:"results"`
}

// Query feeds a search term into the pipeline and returns the display state.
//
// @Summary      Global search
// @Tags         search
// @Produce      json
// @Param        q  query     string  false  "Search term"
// @Success      200  {object}  searchResponse
// @Router       /api/search [get]
func (h *SearchHandler) Query(c echo.Context) error {
	if q := c.QueryParam("q"); q != "" {
		h.search.Input(q)
	}

	term, results := h.search.Results()
	return c.JSON(http.StatusOK, searchResponse{Term: term, Results: results})
}

// Close hides the search panel and drops the displayed results.
//
// @Summary      Close the search panel
// @Tags         search
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/search [delete]
func (h *SearchHandler) Close(c echo.Context) error {
	h.search.CloseSearch()
	return c.JSON(http.StatusOK, map[string]string{"status": "search closed"})
}
