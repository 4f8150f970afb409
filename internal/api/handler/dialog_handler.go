package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/registryops/console-gateway/internal/console"
)

// DialogHandler exposes the shared deletion-confirmation dialog. Deletion
// endpoints announce a request; these endpoints let the operator inspect,
// confirm, or cancel it.
type DialogHandler struct {
	dialog *console.ConfirmationDialog
}

func NewDialogHandler(dialog *console.ConfirmationDialog) *DialogHandler {
	return &DialogHandler{dialog: dialog}
}

type dialogResponse struct {
	State string `json:"state"`
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
	Param string `json:"param,omitempty"`
}

// Pending returns the dialog state with the translated title and body.
//
// @Summary      Pending confirmation
// @Tags         confirmation
// @Produce      json
// @Success      200  {object}  dialogResponse
// @Router       /api/confirmation [get]
func (h *DialogHandler) Pending(c echo.Context) error {
	if h.dialog.State() != console.DialogOpen {
		return c.JSON(http.StatusOK, dialogResponse{State: "idle"})
	}
	title, body, param := h.dialog.Rendered()
	return c.JSON(http.StatusOK, dialogResponse{State: "open", Title: title, Body: body, Param: param})
}

// Confirm accepts the pending deletion. A confirm with no pending request is
// a no-op, matching the dialog itself.
//
// @Summary      Confirm the pending deletion
// @Tags         confirmation
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/confirmation/confirm [post]
func (h *DialogHandler) Confirm(c echo.Context) error {
	h.dialog.Confirm()
	return c.JSON(http.StatusOK, map[string]string{"status": "confirmed"})
}

// Cancel discards the pending deletion without side effects.
//
// @Summary      Cancel the pending deletion
// @Tags         confirmation
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/confirmation/cancel [post]
func (h *DialogHandler) Cancel(c echo.Context) error {
	h.dialog.Cancel()
	return c.JSON(http.StatusOK, map[string]string{"status": "cancelled"})
}
