package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/registryops/console-gateway/internal/core/service"
)

// Guard adapts a route-guard decision to the HTTP layer. Allowed navigations
// proceed; denied ones are redirected to the decision's target route, never
// surfaced as an error.
func Guard(g *service.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// RequestURI keeps the query string, so a later sign-in can
			// forward the caller back to the full original URL.
			decision := g.Decide(c.Request().Context(), c.Request().URL.RequestURI())
			if decision.Allowed {
				return next(c)
			}
			return c.Redirect(http.StatusFound, decision.RedirectTo)
		}
	}
}
