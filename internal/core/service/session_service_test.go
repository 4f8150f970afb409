package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/registryops/console-gateway/internal/core/domain"
)

// stubDirectory is a hand-rolled ports.Directory used across the service
// tests. Unset functions fail loudly so tests only wire what they exercise.
type stubDirectory struct {
	currentUserFn  func(ctx context.Context) (*domain.SessionUser, error)
	signInFn       func(ctx context.Context, principal, password string) error
	signOutFn      func(ctx context.Context) error
	listTargetsFn  func(ctx context.Context, name string) ([]domain.Target, error)
	createTargetFn func(ctx context.Context, target *domain.Target) error
	updateTargetFn func(ctx context.Context, target *domain.Target) error
	deleteTargetFn func(ctx context.Context, id int64) error
	pingTargetFn   func(ctx context.Context, endpoint, username, password string) error
	listPoliciesFn func(ctx context.Context, name string) ([]domain.Policy, error)
	createPolicyFn func(ctx context.Context, policy *domain.Policy) error
	updatePolicyFn func(ctx context.Context, policy *domain.Policy) error
	deletePolicyFn func(ctx context.Context, id int64) error
	searchFn       func(ctx context.Context, term string) (*domain.SearchResults, error)
}

var errStubUnset = errors.New("stub method not wired")

func (s *stubDirectory) CurrentUser(ctx context.Context) (*domain.SessionUser, error) {
	if s.currentUserFn == nil {
		return nil, errStubUnset
	}
	return s.currentUserFn(ctx)
}

func (s *stubDirectory) SignIn(ctx context.Context, principal, password string) error {
	if s.signInFn == nil {
		return errStubUnset
	}
	return s.signInFn(ctx, principal, password)
}

func (s *stubDirectory) SignOut(ctx context.Context) error {
	if s.signOutFn == nil {
		return errStubUnset
	}
	return s.signOutFn(ctx)
}

func (s *stubDirectory) ListTargets(ctx context.Context, name string) ([]domain.Target, error) {
	if s.listTargetsFn == nil {
		return nil, errStubUnset
	}
	return s.listTargetsFn(ctx, name)
}

func (s *stubDirectory) CreateTarget(ctx context.Context, target *domain.Target) error {
	if s.createTargetFn == nil {
		return errStubUnset
	}
	return s.createTargetFn(ctx, target)
}

func (s *stubDirectory) UpdateTarget(ctx context.Context, target *domain.Target) error {
	if s.updateTargetFn == nil {
		return errStubUnset
	}
	return s.updateTargetFn(ctx, target)
}

func (s *stubDirectory) DeleteTarget(ctx context.Context, id int64) error {
	if s.deleteTargetFn == nil {
		return errStubUnset
	}
	return s.deleteTargetFn(ctx, id)
}

func (s *stubDirectory) PingTarget(ctx context.Context, endpoint, username, password string) error {
	if s.pingTargetFn == nil {
		return errStubUnset
	}
	return s.pingTargetFn(ctx, endpoint, username, password)
}

func (s *stubDirectory) ListPolicies(ctx context.Context, name string) ([]domain.Policy, error) {
	if s.listPoliciesFn == nil {
		return nil, errStubUnset
	}
	return s.listPoliciesFn(ctx, name)
}

func (s *stubDirectory) CreatePolicy(ctx context.Context, policy *domain.Policy) error {
	if s.createPolicyFn == nil {
		return errStubUnset
	}
	return s.createPolicyFn(ctx, policy)
}

func (s *stubDirectory) UpdatePolicy(ctx context.Context, policy *domain.Policy) error {
	if s.updatePolicyFn == nil {
		return errStubUnset
	}
	return s.updatePolicyFn(ctx, policy)
}

func (s *stubDirectory) DeletePolicy(ctx context.Context, id int64) error {
	if s.deletePolicyFn == nil {
		return errStubUnset
	}
	return s.deletePolicyFn(ctx, id)
}

func (s *stubDirectory) Search(ctx context.Context, term string) (*domain.SearchResults, error) {
	if s.searchFn == nil {
		return nil, errStubUnset
	}
	return s.searchFn(ctx, term)
}

func adminUser() *domain.SessionUser {
	return &domain.SessionUser{ID: 1, Username: "admin", HasAdminRole: true}
}

func TestSessionService_RetrieveCachesOnSuccess(t *testing.T) {
	calls := 0
	dir := &stubDirectory{
		currentUserFn: func(context.Context) (*domain.SessionUser, error) {
			calls++
			return adminUser(), nil
		},
	}
	svc := NewSessionService(dir, zerolog.Nop())

	if svc.Current() != nil {
		t.Fatalf("expected empty cache before retrieval")
	}

	user, err := svc.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve returned error: %v", err)
	}
	if user == nil || user.Username != "admin" {
		t.Fatalf("unexpected user: %+v", user)
	}

	cached := svc.Current()
	if cached == nil || cached.Username != "admin" {
		t.Fatalf("expected cached user, got %+v", cached)
	}
	if calls != 1 {
		t.Fatalf("expected 1 remote read, got %d", calls)
	}
}

func TestSessionService_CurrentHasNoSideEffects(t *testing.T) {
	calls := 0
	dir := &stubDirectory{
		currentUserFn: func(context.Context) (*domain.SessionUser, error) {
			calls++
			return adminUser(), nil
		},
	}
	svc := NewSessionService(dir, zerolog.Nop())

	svc.Current()
	svc.Current()
	if calls != 0 {
		t.Fatalf("Current issued %d remote reads, expected 0", calls)
	}
}

func TestSessionService_RetrieveFailureClearsCache(t *testing.T) {
	fail := false
	dir := &stubDirectory{
		currentUserFn: func(context.Context) (*domain.SessionUser, error) {
			if fail {
				return nil, domain.ErrUnauthenticated
			}
			return adminUser(), nil
		},
	}
	svc := NewSessionService(dir, zerolog.Nop())

	if _, err := svc.Retrieve(context.Background()); err != nil {
		t.Fatalf("first retrieval failed: %v", err)
	}

	fail = true
	if _, err := svc.Retrieve(context.Background()); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if svc.Current() != nil {
		t.Fatalf("cache should be cleared after failed retrieval")
	}
}

func TestSessionService_ConcurrentRetrievalsAreNotCoalesced(t *testing.T) {
	calls := 0
	dir := &stubDirectory{
		currentUserFn: func(context.Context) (*domain.SessionUser, error) {
			calls++
			return adminUser(), nil
		},
	}
	svc := NewSessionService(dir, zerolog.Nop())

	// Two back-to-back retrievals issue two remote reads; there is no
	// in-flight deduplication.
	_, _ = svc.Retrieve(context.Background())
	_, _ = svc.Retrieve(context.Background())
	if calls != 2 {
		t.Fatalf("expected 2 remote reads, got %d", calls)
	}
}

func TestSessionService_SignInCachesUser(t *testing.T) {
	dir := &stubDirectory{
		signInFn: func(_ context.Context, principal, password string) error {
			if principal != "admin" || password != "s3cret" {
				return domain.ErrInvalidCredentials
			}
			return nil
		},
		currentUserFn: func(context.Context) (*domain.SessionUser, error) {
			return adminUser(), nil
		},
	}
	svc := NewSessionService(dir, zerolog.Nop())

	user, err := svc.SignIn(context.Background(), "admin", "s3cret")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if user == nil || !user.HasAdminRole {
		t.Fatalf("unexpected user: %+v", user)
	}
	if svc.Current() == nil {
		t.Fatalf("expected user cached after sign-in")
	}
}

func TestSessionService_SignInRejectsEmptyCredentials(t *testing.T) {
	svc := NewSessionService(&stubDirectory{}, zerolog.Nop())
	if _, err := svc.SignIn(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionService_SignOffClearsCacheOnlyOnSuccess(t *testing.T) {
	signOutErr := errors.New("core unreachable")
	dir := &stubDirectory{
		currentUserFn: func(context.Context) (*domain.SessionUser, error) {
			return adminUser(), nil
		},
		signOutFn: func(context.Context) error { return signOutErr },
	}
	svc := NewSessionService(dir, zerolog.Nop())
	_, _ = svc.Retrieve(context.Background())

	// Failed sign-out leaves the stale cache in place.
	if err := svc.SignOff(context.Background()); !errors.Is(err, signOutErr) {
		t.Fatalf("expected sign-out error, got %v", err)
	}
	if svc.Current() == nil {
		t.Fatalf("failed sign-off must keep the cached user")
	}

	// Successful sign-out clears it.
	dir.signOutFn = func(context.Context) error { return nil }
	if err := svc.SignOff(context.Background()); err != nil {
		t.Fatalf("SignOff failed: %v", err)
	}
	if svc.Current() != nil {
		t.Fatalf("successful sign-off must clear the cache")
	}
}
