package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/registryops/console-gateway/internal/core/domain"
	"github.com/registryops/console-gateway/internal/core/ports"
	"github.com/registryops/console-gateway/internal/pkg/metrics"
)

// SessionService caches the current operator identity. The cache holds at
// most one record; its lifecycle is tied to the process and it is reset on
// restart. Retrieve calls are not coalesced: a second call arriving while one
// is in flight issues a duplicate remote read.
type SessionService struct {
	directory ports.Directory
	log       zerolog.Logger

	mu   sync.RWMutex
	user *domain.SessionUser
}

func NewSessionService(directory ports.Directory, log zerolog.Logger) *SessionService {
	return &SessionService{directory: directory, log: log}
}

// Current returns a copy of the cached user, or nil when none is cached.
// Synchronous, no side effects.
func (s *SessionService) Current() *domain.SessionUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Retrieve asks the registry core who the current user is. Success replaces
// the cached record; any failure (including unauthenticated) clears it.
func (s *SessionService) Retrieve(ctx context.Context) (*domain.SessionUser, error) {
	user, err := s.directory.CurrentUser(ctx)
	if err != nil {
		metrics.SessionRefreshTotal.WithLabelValues("miss").Inc()
		s.mu.Lock()
		s.user = nil
		s.mu.Unlock()
		return nil, err
	}

	metrics.SessionRefreshTotal.WithLabelValues("hit").Inc()
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	u := *user
	return &u, nil
}

// SignIn authenticates against the registry core and caches the resulting
// user via Retrieve.
func (s *SessionService) SignIn(ctx context.Context, principal, password string) (*domain.SessionUser, error) {
	if principal == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if err := s.directory.SignIn(ctx, principal, password); err != nil {
		s.log.Debug().Err(err).Str("principal", principal).Msg("sign-in rejected")
		return nil, err
	}
	return s.Retrieve(ctx)
}

// SignOff signs out of the registry core. The cache is cleared only when the
// remote call succeeds; on failure the stale record stays cached.
func (s *SessionService) SignOff(ctx context.Context) error {
	if err := s.directory.SignOut(ctx); err != nil {
		s.log.Warn().Err(err).Msg("sign-out failed, keeping cached session")
		return err
	}

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return nil
}
