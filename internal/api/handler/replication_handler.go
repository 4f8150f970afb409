package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/registryops/console-gateway/internal/bus"
	"github.com/registryops/console-gateway/internal/console"
	"github.com/registryops/console-gateway/internal/core/domain"
	"github.com/registryops/console-gateway/internal/core/ports"
)

type ReplicationHandler struct {
	replications ports.ReplicationService
	messages     ports.MessagePublisher
	announce     *bus.Channel[domain.DeletionRequest]
	policies     *console.PolicyView
}

func NewReplicationHandler(replications ports.ReplicationService, messages ports.MessagePublisher, announce *bus.Channel[domain.DeletionRequest], policies *console.PolicyView) *ReplicationHandler {
	return &ReplicationHandler{replications: replications, messages: messages, announce: announce, policies: policies}
}

type targetRequest struct {
	Name     string `json:"name"     validate:"required"`
	Endpoint string `json:"endpoint" validate:"required,url"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type policyRequest struct {
	Name        string `json:"name"       validate:"required"`
	Description string `json:"description"`
	ProjectID   int64  `json:"project_id" validate:"required"`
	Enabled     int    `json:"enabled"    validate:"oneof=0 1"`

	// Either a reference to an existing target or an inline new one.
	TargetID  int64          `json:"target_id,omitempty"`
	NewTarget *targetRequest `json:"new_target,omitempty"`
}

type pingRequest struct {
	Endpoint string `form:"endpoint" validate:"required,url"`
	Username string `form:"username"`
	Password string `form:"password"`
}

// CreatePolicy creates a replication policy. When the request carries an
// inline new target, the target is created first and the policy linked to it.
//
// @Summary      Create replication policy
// @Tags         replication
// @Accept       json
// @Produce      json
// @Param        body  body      policyRequest  true  "Policy, optionally with an inline new target"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/policies/replication [post]
func (h *ReplicationHandler) CreatePolicy(c echo.Context) error {
	return h.savePolicy(c, 0)
}

// UpdatePolicy updates an existing replication policy.
//
// @Summary      Update replication policy
// @Tags         replication
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Policy ID"
// @Param        body  body      policyRequest  true  "Policy, optionally with an inline new target"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/policies/replication/{id} [put]
func (h *ReplicationHandler) UpdatePolicy(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid policy id")
	}
	return h.savePolicy(c, id)
}

func (h *ReplicationHandler) savePolicy(c echo.Context, policyID int64) error {
	var req policyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.NewTarget == nil && req.TargetID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "target_id or new_target is required")
	}

	policy := &domain.Policy{
		ID:          policyID,
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
		Enabled:     req.Enabled,
		TargetID:    req.TargetID,
	}

	ctx := c.Request().Context()
	var err error
	if req.NewTarget != nil {
		target := &domain.Target{
			Name:     req.NewTarget.Name,
			Endpoint: req.NewTarget.Endpoint,
			Username: req.NewTarget.Username,
			Password: req.NewTarget.Password,
		}
		err = h.replications.SavePolicyWithNewTarget(ctx, policy, target)
	} else {
		err = h.replications.SavePolicy(ctx, policy)
	}
	if err != nil {
		if h.messages.IsAppLevel(err) {
			h.messages.HandleError(err)
		}
		return err
	}

	status := http.StatusCreated
	text := "replication policy created"
	if policyID > 0 {
		status = http.StatusOK
		text = "replication policy updated"
	}
	h.messages.ShowSuccess(text)
	return c.JSON(status, map[string]string{"status": text})
}

// ListPolicies lists replication policies, optionally filtered by name.
// Unfiltered listings are served through the reload-aware policy view.
//
// @Summary      List replication policies
// @Tags         replication
// @Produce      json
// @Param        name  query     string  false  "Filter by policy name"
// @Success      200   {array}   domain.Policy
// @Router       /api/policies/replication [get]
func (h *ReplicationHandler) ListPolicies(c echo.Context) error {
	policies, err := h.policies.List(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		if h.messages.IsAppLevel(err) {
			h.messages.HandleError(err)
		}
		return err
	}
	return c.JSON(http.StatusOK, policies)
}

// DeletePolicy announces the deletion on the confirmation channel. Nothing is
// removed until the operator confirms through the dialog.
//
// @Summary      Request replication policy deletion
// @Tags         replication
// @Produce      json
// @Param        id  path  int  true  "Policy ID"
// @Success      202  {object}  map[string]string
// @Router       /api/policies/replication/{id} [delete]
func (h *ReplicationHandler) DeletePolicy(c echo.Context) error {
	return h.announceDeletion(c, domain.DeletePolicy, "REPLICATION.DELETION_TITLE", "REPLICATION.DELETION_SUMMARY")
}

// DeleteTarget announces the deletion on the confirmation channel.
//
// @Summary      Request replication target deletion
// @Tags         replication
// @Produce      json
// @Param        id  path  int  true  "Target ID"
// @Success      202  {object}  map[string]string
// @Router       /api/targets/{id} [delete]
func (h *ReplicationHandler) DeleteTarget(c echo.Context) error {
	return h.announceDeletion(c, domain.DeleteTarget, "DESTINATION.DELETION_TITLE", "DESTINATION.DELETION_SUMMARY")
}

func (h *ReplicationHandler) announceDeletion(c echo.Context, kind domain.DeletionKind, titleKey, bodyKey string) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	h.announce.Publish(domain.DeletionRequest{
		ID:       uuid.NewString(),
		TitleKey: titleKey,
		BodyKey:  bodyKey,
		Param:    c.Param("id"),
		Kind:     kind,
		Payload:  id,
	})
	return c.JSON(http.StatusAccepted, map[string]string{"status": "confirmation required"})
}

// ListTargets lists replication targets, optionally filtered by name.
//
// @Summary      List replication targets
// @Tags         replication
// @Produce      json
// @Param        name  query     string  false  "Filter by target name"
// @Success      200   {array}   domain.Target
// @Router       /api/targets [get]
func (h *ReplicationHandler) ListTargets(c echo.Context) error {
	targets, err := h.replications.ListTargets(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		if h.messages.IsAppLevel(err) {
			h.messages.HandleError(err)
		}
		return err
	}
	return c.JSON(http.StatusOK, targets)
}

// CreateTarget creates a standalone replication target.
//
// @Summary      Create replication target
// @Tags         replication
// @Accept       json
// @Produce      json
// @Param        body  body      targetRequest  true  "Target details"
// @Success      201   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/targets [post]
func (h *ReplicationHandler) CreateTarget(c echo.Context) error {
	return h.saveTarget(c, 0)
}

// UpdateTarget updates an existing replication target.
//
// @Summary      Update replication target
// @Tags         replication
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Target ID"
// @Param        body  body      targetRequest  true  "Target details"
// @Success      200   {object}  map[string]string
// @Router       /api/targets/{id} [put]
func (h *ReplicationHandler) UpdateTarget(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid target id")
	}
	return h.saveTarget(c, id)
}

func (h *ReplicationHandler) saveTarget(c echo.Context, targetID int64) error {
	var req targetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	target := &domain.Target{
		ID:       targetID,
		Name:     req.Name,
		Endpoint: req.Endpoint,
		Username: req.Username,
		Password: req.Password,
	}

	if err := h.replications.SaveTarget(c.Request().Context(), target); err != nil {
		if h.messages.IsAppLevel(err) {
			h.messages.HandleError(err)
		}
		return err
	}

	status := http.StatusCreated
	text := "target created"
	if targetID > 0 {
		status = http.StatusOK
		text = "target updated"
	}
	h.messages.ShowSuccess(text)
	return c.JSON(status, map[string]string{"status": text})
}

// PingTarget checks connectivity of an endpoint before it is saved.
//
// @Summary      Test target connectivity
// @Tags         replication
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        endpoint  formData  string  true   "Endpoint URL"
// @Param        username  formData  string  false  "Username"
// @Param        password  formData  string  false  "Password"
// @Success      200  {object}  map[string]string
// @Router       /api/targets/ping [post]
func (h *ReplicationHandler) PingTarget(c echo.Context) error {
	var req pingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.replications.PingTarget(c.Request().Context(), req.Endpoint, req.Username, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "reachable"})
}
