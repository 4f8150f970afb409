package ports

import (
	"context"

	"github.com/registryops/console-gateway/internal/core/domain"
)

// ReplicationService orchestrates replication target and policy writes
// against the registry core.
type ReplicationService interface {
	// SavePolicy creates or updates a policy referencing an existing target.
	// Create vs update is keyed on the presence of a policy ID.
	SavePolicy(ctx context.Context, policy *domain.Policy) error

	// SavePolicyWithNewTarget first creates the target, recovers its
	// server-assigned ID by name, then creates or updates the policy pointing
	// at it. There is no compensation: a failure after target creation
	// returns *domain.OrphanedTargetError and leaves the target behind.
	SavePolicyWithNewTarget(ctx context.Context, policy *domain.Policy, target *domain.Target) error

	ListTargets(ctx context.Context, name string) ([]domain.Target, error)
	SaveTarget(ctx context.Context, target *domain.Target) error
	PingTarget(ctx context.Context, endpoint, username, password string) error

	ListPolicies(ctx context.Context, name string) ([]domain.Policy, error)

	// DeleteTarget removes a target by ID. The core rejects the delete while
	// any policy still references the target.
	DeleteTarget(ctx context.Context, id int64) error

	// DeletePolicy removes a policy by ID and signals a list reload on
	// success.
	DeletePolicy(ctx context.Context, id int64) error
}
