package service

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/registryops/console-gateway/internal/core/domain"
	"github.com/registryops/console-gateway/internal/core/ports"
	"github.com/registryops/console-gateway/internal/pkg/metrics"
)

// Routes the guards redirect to.
const (
	RouteSignIn    = "/sign-in"
	RouteDashboard = "/"
)

// Guard gates a navigation attempt. All three variants share one decision
// protocol and differ only in the authorization predicate; the predicate
// receives nil when no user is signed in.
//
// Decide never returns an error: every failure path is converted into an
// Allow or DenyRedirect decision.
type Guard struct {
	name        string
	sessions    ports.SessionService
	predicate   func(u *domain.SessionUser) bool
	fallback    string
	publicRoute string
	log         zerolog.Logger
}

// NewAuthenticatedGuard requires any signed-in user. publicRoute is the
// single route anonymous callers may still reach.
func NewAuthenticatedGuard(sessions ports.SessionService, publicRoute string, log zerolog.Logger) *Guard {
	return &Guard{
		name:        "authenticated",
		sessions:    sessions,
		predicate:   func(u *domain.SessionUser) bool { return u != nil },
		fallback:    RouteSignIn,
		publicRoute: publicRoute,
		log:         log,
	}
}

// NewAnonymousGuard requires the absence of a signed-in user. It gates the
// sign-in page so signed-in operators are bounced back to the dashboard.
func NewAnonymousGuard(sessions ports.SessionService, log zerolog.Logger) *Guard {
	return &Guard{
		name:      "anonymous",
		sessions:  sessions,
		predicate: func(u *domain.SessionUser) bool { return u == nil },
		fallback:  RouteDashboard,
		log:       log,
	}
}

// NewAdminGuard requires a signed-in user with the admin flag. A signed-in
// non-admin is sent to the dashboard, not to sign-in.
func NewAdminGuard(sessions ports.SessionService, publicRoute string, log zerolog.Logger) *Guard {
	return &Guard{
		name:        "admin",
		sessions:    sessions,
		predicate:   func(u *domain.SessionUser) bool { return u != nil && u.HasAdminRole },
		fallback:    RouteDashboard,
		publicRoute: publicRoute,
		log:         log,
	}
}

// Decide evaluates the guard for a navigation to requested. Child-route
// activation delegates to this same function; there is no separate logic.
func (g *Guard) Decide(ctx context.Context, requested string) domain.Decision {
	if u := g.sessions.Current(); u != nil {
		return g.record(g.evaluate(u))
	}

	u, err := g.sessions.Retrieve(ctx)
	if err != nil {
		// Still no session. The absence itself satisfies the anonymous
		// predicate; everyone else is allowed only onto the public route.
		if g.predicate(nil) {
			return g.record(domain.Allow())
		}
		if requested == g.publicRoute && g.publicRoute != "" {
			return g.record(domain.Allow())
		}
		return g.record(domain.DenyRedirect(signInRedirect(requested)))
	}

	return g.record(g.evaluate(u))
}

func (g *Guard) evaluate(u *domain.SessionUser) domain.Decision {
	if g.predicate(u) {
		return domain.Allow()
	}
	return domain.DenyRedirect(g.fallback)
}

func (g *Guard) record(d domain.Decision) domain.Decision {
	outcome := "allow"
	if !d.Allowed {
		outcome = "deny"
		g.log.Debug().Str("guard", g.name).Str("redirect", d.RedirectTo).Msg("navigation denied")
	}
	metrics.GuardDecisionsTotal.WithLabelValues(g.name, outcome).Inc()
	return d
}

// signInRedirect builds the sign-in route carrying the originally requested
// URL so sign-in can forward the operator back afterwards.
func signInRedirect(requested string) string {
	if requested == "" {
		return RouteSignIn
	}
	return RouteSignIn + "?redirect_url=" + url.QueryEscape(requested)
}
