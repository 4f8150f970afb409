package console

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/registryops/console-gateway/internal/bus"
	"github.com/registryops/console-gateway/internal/core/domain"
)

// DialogState is the confirmation dialog's lifecycle state.
type DialogState int

const (
	DialogIdle DialogState = iota
	DialogOpen
)

// ConfirmationDialog is the single shared "are you sure?" dialog used by
// every delete action. It listens on the announce channel; Confirm
// republishes the pending request on the confirm channel, Cancel discards it
// silently. An announce arriving while a request is already pending
// unconditionally overwrites it: last announce wins, the earlier request is
// dropped without warning.
type ConfirmationDialog struct {
	confirm    *bus.Channel[domain.DeletionRequest]
	translator Translator
	log        zerolog.Logger
	sub        *bus.Subscription[domain.DeletionRequest]

	mu      sync.Mutex
	state   DialogState
	pending *domain.DeletionRequest
	title   string
	body    string
}

// NewConfirmationDialog wires the dialog to the hub's announce and confirm
// channels. One instance app-wide.
func NewConfirmationDialog(hub *bus.Hub, translator Translator, log zerolog.Logger) *ConfirmationDialog {
	d := &ConfirmationDialog{
		confirm:    hub.DeletionConfirm,
		translator: translator,
		log:        log,
	}
	d.sub = hub.DeletionAnnounce.Subscribe(d.handleAnnounce)
	return d
}

func (d *ConfirmationDialog) handleAnnounce(req domain.DeletionRequest) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == DialogOpen && d.pending != nil {
		d.log.Debug().
			Str("dropped", d.pending.ID).
			Str("replacement", req.ID).
			Msg("pending deletion request overwritten by new announce")
	}

	r := req
	d.pending = &r
	d.state = DialogOpen
	d.title = d.translator.Translate(req.TitleKey)
	d.body = d.translator.Translate(req.BodyKey)
}

// State returns the current dialog state.
func (d *ConfirmationDialog) State() DialogState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Rendered returns the translated title and body plus the human-readable
// parameter of the pending request. Empty strings when idle.
func (d *ConfirmationDialog) Rendered() (title, body, param string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != DialogOpen || d.pending == nil {
		return "", "", ""
	}
	return d.title, d.body, d.pending.Param
}

// Confirm publishes the pending request on the confirm channel and closes
// the dialog. A confirm while idle is a no-op.
func (d *ConfirmationDialog) Confirm() {
	d.mu.Lock()
	if d.state != DialogOpen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	req := *d.pending
	d.reset()
	d.mu.Unlock()

	// Published outside the lock: confirm subscribers may announce again.
	d.confirm.Publish(req)
}

// Cancel discards the pending request without publishing anything.
func (d *ConfirmationDialog) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

// Close detaches the dialog from the announce channel.
func (d *ConfirmationDialog) Close() {
	d.sub.Unsubscribe()
}

func (d *ConfirmationDialog) reset() {
	d.state = DialogIdle
	d.pending = nil
	d.title = ""
	d.body = ""
}
