package service

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/registryops/console-gateway/internal/bus"
	"github.com/registryops/console-gateway/internal/core/domain"
	"github.com/registryops/console-gateway/internal/pkg/metrics"
)

// MessageService converts operation outcomes into banner messages and routes
// them to the right channel: session-level failures (401/403) go to the
// app-level channel, everything else to the page-level channel.
type MessageService struct {
	general *bus.Channel[domain.Message]
	app     *bus.Channel[domain.Message]
	log     zerolog.Logger
}

func NewMessageService(hub *bus.Hub, log zerolog.Logger) *MessageService {
	return &MessageService{general: hub.Messages, app: hub.AppMessages, log: log}
}

// ShowSuccess publishes a success banner on the page-level channel.
func (m *MessageService) ShowSuccess(text string) {
	m.publish(m.general, domain.Message{
		StatusCode: http.StatusOK,
		Text:       text,
		Severity:   domain.SeveritySuccess,
	})
}

// IsAppLevel reports whether err must surface as an app-level banner plus a
// forced sign-in redirect rather than as an inline error.
func (m *MessageService) IsAppLevel(err error) bool {
	return errors.Is(err, domain.ErrUnauthenticated) || errors.Is(err, domain.ErrForbidden)
}

// HandleError routes err to the appropriate channel. 401/403 become
// app-level messages; 400/409 and unknown failures become page-level errors.
// Nothing is swallowed: every error produces exactly one message.
func (m *MessageService) HandleError(err error) {
	status := statusOf(err)
	msg := domain.Message{
		StatusCode: status,
		Text:       err.Error(),
		Severity:   domain.SeverityError,
	}

	if m.IsAppLevel(err) {
		m.publish(m.app, msg)
		return
	}
	m.publish(m.general, msg)
}

func (m *MessageService) publish(ch *bus.Channel[domain.Message], msg domain.Message) {
	metrics.MessagesPublishedTotal.WithLabelValues(ch.Name(), string(msg.Severity)).Inc()
	m.log.Debug().Int("status", msg.StatusCode).Str("channel", ch.Name()).Msg("banner message published")
	ch.Publish(msg)
}

// statusOf maps a domain error to the HTTP status it originated from.
// Unknown failures report 500.
func statusOf(err error) int {
	var de *domain.DirectoryError
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.As(err, &de):
		return de.StatusCode
	default:
		return http.StatusInternalServerError
	}
}
