package bus

import "github.com/registryops/console-gateway/internal/core/domain"

// Hub owns the named channels used across the console. Messages and
// AppMessages are kept separate so a full-shell banner and a page-owned
// banner never collide. One Hub instance per process, passed by reference.
type Hub struct {
	Messages    *Channel[domain.Message]
	AppMessages *Channel[domain.Message]

	DeletionAnnounce *Channel[domain.DeletionRequest]
	DeletionConfirm  *Channel[domain.DeletionRequest]

	SearchTrigger *Channel[string]
	SearchClose   *Channel[struct{}]

	PolicyReload *Channel[struct{}]
}

// NewHub creates the full channel set.
func NewHub() *Hub {
	return &Hub{
		Messages:         NewChannel[domain.Message]("messages"),
		AppMessages:      NewChannel[domain.Message]("app_messages"),
		DeletionAnnounce: NewChannel[domain.DeletionRequest]("deletion_announce"),
		DeletionConfirm:  NewChannel[domain.DeletionRequest]("deletion_confirm"),
		SearchTrigger:    NewChannel[string]("search_trigger"),
		SearchClose:      NewChannel[struct{}]("search_close"),
		PolicyReload:     NewChannel[struct{}]("policy_reload"),
	}
}
