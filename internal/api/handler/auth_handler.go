package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/registryops/console-gateway/internal/core/domain"
	"github.com/registryops/console-gateway/internal/core/ports"
)

type AuthHandler struct {
	sessions  ports.SessionService
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthHandler(sessions ports.SessionService, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthHandler{sessions: sessions, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

type loginRequest struct {
	Principal string `form:"principal" validate:"required"`
	Password  string `form:"password"  validate:"required"`
}

type loginResponse struct {
	Token string              `json:"token"`
	User  *domain.SessionUser `json:"user"`
}

// Login authenticates against the registry core and issues a console token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        principal  formData  string  true  "Username"
// @Param        password   formData  string  true  "Password"
// @Success      200  {object}  loginResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /c/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.sessions.SignIn(c.Request().Context(), req.Principal, req.Password)
	if err != nil {
		return err
	}

	token, err := h.generateToken(user)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}

// Logout terminates the core session. A failed sign-out keeps the cached
// session and reports the failure.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /c/log_out [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.SignOff(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "signed out"})
}

// CurrentUser returns the cached session user, retrieving it from the core
// when the cache is empty.
//
// @Summary      Current session user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.SessionUser
// @Failure      401  {object}  map[string]string
// @Router       /api/users/current [get]
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	if user := h.sessions.Current(); user != nil {
		return c.JSON(http.StatusOK, user)
	}

	user, err := h.sessions.Retrieve(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) generateToken(user *domain.SessionUser) (string, error) {
	claims := jwt.MapClaims{
		"username": user.Username,
		"admin":    user.HasAdminRole,
		"exp":      time.Now().Add(h.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(h.jwtSecret))
}
