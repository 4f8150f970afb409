package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/registryops/console-gateway/internal/bus"
	"github.com/registryops/console-gateway/internal/core/domain"
	"github.com/registryops/console-gateway/internal/core/ports"
	"github.com/registryops/console-gateway/internal/pkg/metrics"
)

// ReplicationService orchestrates target and policy writes. The new-target
// path is a two-resource saga with no compensating action: once the target is
// created, any later failure leaves it in the registry core with no policy
// referencing it, surfaced as *domain.OrphanedTargetError.
type ReplicationService struct {
	directory ports.Directory
	reload    *bus.Channel[struct{}]
	log       zerolog.Logger
}

func NewReplicationService(directory ports.Directory, hub *bus.Hub, log zerolog.Logger) *ReplicationService {
	return &ReplicationService{directory: directory, reload: hub.PolicyReload, log: log}
}

// SavePolicy creates or updates a policy referencing an existing target and
// signals a list reload on success. Create vs update is keyed on policy.ID.
func (s *ReplicationService) SavePolicy(ctx context.Context, policy *domain.Policy) error {
	if err := s.writePolicy(ctx, policy); err != nil {
		metrics.PolicySavesTotal.WithLabelValues("existing_target", "error").Inc()
		return err
	}
	metrics.PolicySavesTotal.WithLabelValues("existing_target", "success").Inc()
	s.reload.Publish(struct{}{})
	return nil
}

// SavePolicyWithNewTarget runs the saga:
//
//  1. Create the target. Abort on failure (409 duplicate name, 400 invalid,
//     or anything else).
//  2. List targets filtered by the just-used name to recover the
//     server-assigned ID; the creation response does not return the object.
//  3. Point the policy at the first result.
//  4. Create or update the policy, keyed on policy.ID.
//  5. Signal a reload.
//
// Steps 2–4 failing after step 1 succeeded leaves the new target orphaned.
func (s *ReplicationService) SavePolicyWithNewTarget(ctx context.Context, policy *domain.Policy, target *domain.Target) error {
	saga := uuid.NewString()
	log := s.log.With().Str("saga_id", saga).Str("target_name", target.Name).Logger()

	if err := s.directory.CreateTarget(ctx, target); err != nil {
		log.Debug().Err(err).Msg("target creation failed, saga aborted")
		metrics.PolicySavesTotal.WithLabelValues("new_target", "error").Inc()
		return fmt.Errorf("create target: %w", err)
	}

	targets, err := s.directory.ListTargets(ctx, target.Name)
	if err != nil {
		return s.orphaned(log, target.Name, 0, fmt.Errorf("look up created target: %w", err))
	}
	if len(targets) == 0 {
		return s.orphaned(log, target.Name, 0, domain.ErrTargetNotFound)
	}

	policy.TargetID = targets[0].ID
	if err := s.writePolicy(ctx, policy); err != nil {
		return s.orphaned(log, target.Name, targets[0].ID, err)
	}

	metrics.PolicySavesTotal.WithLabelValues("new_target", "success").Inc()
	s.reload.Publish(struct{}{})
	return nil
}

func (s *ReplicationService) orphaned(log zerolog.Logger, name string, id int64, err error) error {
	log.Warn().Err(err).Int64("target_id", id).Msg("saga aborted after target creation, target left orphaned")
	metrics.PolicySavesTotal.WithLabelValues("new_target", "orphaned").Inc()
	return &domain.OrphanedTargetError{TargetName: name, TargetID: id, Err: err}
}

func (s *ReplicationService) writePolicy(ctx context.Context, policy *domain.Policy) error {
	if policy.ID > 0 {
		return s.directory.UpdatePolicy(ctx, policy)
	}
	return s.directory.CreatePolicy(ctx, policy)
}

// ListTargets proxies the target listing, optionally filtered by name.
func (s *ReplicationService) ListTargets(ctx context.Context, name string) ([]domain.Target, error) {
	return s.directory.ListTargets(ctx, name)
}

// SaveTarget creates or updates a standalone target, keyed on target.ID.
func (s *ReplicationService) SaveTarget(ctx context.Context, target *domain.Target) error {
	if target.ID > 0 {
		return s.directory.UpdateTarget(ctx, target)
	}
	return s.directory.CreateTarget(ctx, target)
}

// PingTarget checks connectivity of an endpoint with the given credentials.
func (s *ReplicationService) PingTarget(ctx context.Context, endpoint, username, password string) error {
	return s.directory.PingTarget(ctx, endpoint, username, password)
}

// ListPolicies proxies the policy listing, optionally filtered by name.
func (s *ReplicationService) ListPolicies(ctx context.Context, name string) ([]domain.Policy, error) {
	return s.directory.ListPolicies(ctx, name)
}

// DeleteTarget removes a target by ID.
func (s *ReplicationService) DeleteTarget(ctx context.Context, id int64) error {
	return s.directory.DeleteTarget(ctx, id)
}

// DeletePolicy removes a policy by ID and signals a list reload on success.
func (s *ReplicationService) DeletePolicy(ctx context.Context, id int64) error {
	if err := s.directory.DeletePolicy(ctx, id); err != nil {
		return err
	}
	s.reload.Publish(struct{}{})
	return nil
}
