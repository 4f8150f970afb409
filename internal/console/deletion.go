package console

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/registryops/console-gateway/internal/bus"
	"github.com/registryops/console-gateway/internal/core/domain"
	"github.com/registryops/console-gateway/internal/core/ports"
)

// DeletionExecutor carries out target and policy deletions once the operator
// confirms them. It subscribes to the shared confirm channel and filters by
// kind; requests for other features pass through untouched.
type DeletionExecutor struct {
	replications ports.ReplicationService
	messages     ports.MessagePublisher
	log          zerolog.Logger
	sub          *bus.Subscription[domain.DeletionRequest]
}

func NewDeletionExecutor(hub *bus.Hub, replications ports.ReplicationService, messages ports.MessagePublisher, log zerolog.Logger) *DeletionExecutor {
	e := &DeletionExecutor{replications: replications, messages: messages, log: log}
	e.sub = hub.DeletionConfirm.Subscribe(e.handleConfirm)
	return e
}

func (e *DeletionExecutor) handleConfirm(req domain.DeletionRequest) {
	var del func(ctx context.Context, id int64) error
	var success string
	switch req.Kind {
	case domain.DeleteTarget:
		del, success = e.replications.DeleteTarget, "target deleted"
	case domain.DeletePolicy:
		del, success = e.replications.DeletePolicy, "replication policy deleted"
	default:
		return
	}

	id, ok := req.Payload.(int64)
	if !ok {
		e.log.Error().Str("request", req.ID).Str("kind", string(req.Kind)).Msg("confirmed deletion request carries no id")
		return
	}

	if err := del(context.Background(), id); err != nil {
		e.log.Debug().Err(err).Str("request", req.ID).Int64("id", id).Msg("deletion failed")
		e.messages.HandleError(err)
		return
	}
	e.messages.ShowSuccess(success)
}

// Close detaches the executor from the confirm channel.
func (e *DeletionExecutor) Close() {
	e.sub.Unsubscribe()
}
