package service

import (
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/registryops/console-gateway/internal/bus"
	"github.com/registryops/console-gateway/internal/core/domain"
)

func newMessageFixture() (*MessageService, *[]domain.Message, *[]domain.Message) {
	hub := bus.NewHub()
	var general, app []domain.Message
	hub.Messages.Subscribe(func(m domain.Message) { general = append(general, m) })
	hub.AppMessages.Subscribe(func(m domain.Message) { app = append(app, m) })
	return NewMessageService(hub, zerolog.Nop()), &general, &app
}

func TestMessageService_SessionErrorsGoToAppChannel(t *testing.T) {
	svc, general, app := newMessageFixture()

	svc.HandleError(domain.ErrUnauthenticated)
	svc.HandleError(domain.ErrForbidden)

	if len(*general) != 0 {
		t.Fatalf("session errors leaked to the page-level channel: %v", *general)
	}
	if len(*app) != 2 {
		t.Fatalf("expected 2 app-level messages, got %d", len(*app))
	}
	if (*app)[0].StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", (*app)[0].StatusCode)
	}
	if (*app)[1].StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", (*app)[1].StatusCode)
	}
}

func TestMessageService_ConflictStaysPageLevel(t *testing.T) {
	svc, general, app := newMessageFixture()

	svc.HandleError(domain.ErrConflict)

	if len(*app) != 0 {
		t.Fatalf("409 must not surface app-level: %v", *app)
	}
	if len(*general) != 1 {
		t.Fatalf("expected 1 page-level message, got %d", len(*general))
	}
	got := (*general)[0]
	if got.StatusCode != http.StatusConflict || got.Severity != domain.SeverityError {
		t.Fatalf("unexpected message: %+v", got)
	}
}

func TestMessageService_DirectoryErrorKeepsOriginStatus(t *testing.T) {
	svc, general, _ := newMessageFixture()

	svc.HandleError(&domain.DirectoryError{StatusCode: http.StatusBadGateway, Message: "upstream down"})

	if len(*general) != 1 || (*general)[0].StatusCode != http.StatusBadGateway {
		t.Fatalf("expected one 502 message, got %v", *general)
	}
}

func TestMessageService_UnknownErrorReports500(t *testing.T) {
	svc, general, _ := newMessageFixture()

	svc.HandleError(errors.New("boom"))

	if len(*general) != 1 || (*general)[0].StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected one 500 message, got %v", *general)
	}
}

func TestMessageService_ShowSuccess(t *testing.T) {
	svc, general, app := newMessageFixture()

	svc.ShowSuccess("policy saved")

	if len(*app) != 0 {
		t.Fatalf("success must not surface app-level")
	}
	if len(*general) != 1 {
		t.Fatalf("expected 1 message, got %d", len(*general))
	}
	got := (*general)[0]
	if got.Severity != domain.SeveritySuccess || got.Text != "policy saved" {
		t.Fatalf("unexpected message: %+v", got)
	}
}

func TestMessageService_IsAppLevel(t *testing.T) {
	svc, _, _ := newMessageFixture()

	if !svc.IsAppLevel(domain.ErrUnauthenticated) || !svc.IsAppLevel(domain.ErrForbidden) {
		t.Fatalf("401/403 must be app-level")
	}
	if svc.IsAppLevel(domain.ErrConflict) || svc.IsAppLevel(errors.New("boom")) {
		t.Fatalf("only 401/403 are app-level")
	}
}
