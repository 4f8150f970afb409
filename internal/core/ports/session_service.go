package ports

import (
	"context"

	"github.com/registryops/console-gateway/internal/core/domain"
)

// SessionService owns the per-process current-user cache.
type SessionService interface {
	// Current returns the cached user without side effects, or nil when no
	// user is cached.
	Current() *domain.SessionUser

	// Retrieve issues a remote who-am-I read. On success the result is cached
	// and returned; on failure the cache is cleared and the error returned.
	// Concurrent calls are not coalesced and issue duplicate remote reads.
	Retrieve(ctx context.Context) (*domain.SessionUser, error)

	// SignIn authenticates against the registry core and, on success, caches
	// the resulting user.
	SignIn(ctx context.Context, principal, password string) (*domain.SessionUser, error)

	// SignOff issues a remote sign-out. The cache is cleared only when the
	// remote call succeeds; a failed sign-out leaves the stale cache in place.
	SignOff(ctx context.Context) error
}
