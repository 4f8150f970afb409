package ports

import (
	"context"

	"github.com/registryops/console-gateway/internal/core/domain"
)

// Directory is the registry core API the console fronts. Implementations map
// 401/403/409/400 responses to the matching domain sentinel errors and wrap
// everything else in *domain.DirectoryError.
type Directory interface {
	CurrentUser(ctx context.Context) (*domain.SessionUser, error)
	SignIn(ctx context.Context, principal, password string) error
	SignOut(ctx context.Context) error

	ListTargets(ctx context.Context, name string) ([]domain.Target, error)
	CreateTarget(ctx context.Context, target *domain.Target) error
	UpdateTarget(ctx context.Context, target *domain.Target) error
	DeleteTarget(ctx context.Context, id int64) error
	PingTarget(ctx context.Context, endpoint, username, password string) error

	ListPolicies(ctx context.Context, name string) ([]domain.Policy, error)
	CreatePolicy(ctx context.Context, policy *domain.Policy) error
	UpdatePolicy(ctx context.Context, policy *domain.Policy) error
	DeletePolicy(ctx context.Context, id int64) error

	Search(ctx context.Context, term string) (*domain.SearchResults, error)
}
