package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/registryops/console-gateway/internal/api/handler"
	"github.com/registryops/console-gateway/internal/api/middleware"
	"github.com/registryops/console-gateway/internal/bus"
	"github.com/registryops/console-gateway/internal/console"
	"github.com/registryops/console-gateway/internal/core/ports"
	"github.com/registryops/console-gateway/internal/core/service"
	"github.com/registryops/console-gateway/internal/pkg/config"
)

// Deps bundles everything the router hands to its handlers.
type Deps struct {
	Sessions     ports.SessionService
	Replications ports.ReplicationService
	Messages     ports.MessagePublisher
	Hub          *bus.Hub
	Dialog       *console.ConfirmationDialog
	Search       *console.SearchCoordinator
	Policies     *console.PolicyView
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Route groups carry the guard matching their sensitivity: the sign-in
// endpoint is anonymous-only, the console API requires a session, and the
// replication surface additionally requires the admin flag plus a valid
// console token.
func NewRouter(cfg *config.Config, deps Deps, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("console"))

	// --- Guards ---
	authGuard := middleware.Guard(service.NewAuthenticatedGuard(deps.Sessions, cfg.PublicRoute, log))
	adminGuard := middleware.Guard(service.NewAdminGuard(deps.Sessions, cfg.PublicRoute, log))
	anonGuard := middleware.Guard(service.NewAnonymousGuard(deps.Sessions, log))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions, cfg.JWTSecret, cfg.TokenTTL)
	replicationHandler := handler.NewReplicationHandler(deps.Replications, deps.Messages, deps.Hub.DeletionAnnounce, deps.Policies)
	searchHandler := handler.NewSearchHandler(deps.Search)
	dialogHandler := handler.NewDialogHandler(deps.Dialog)
	healthHandler := handler.NewHealthHandler()

	// --- Session routes ---
	e.POST("/c/login", authHandler.Login, anonGuard)
	e.GET("/c/log_out", authHandler.Logout, authGuard)

	// --- Console API ---
	api := e.Group("/api", authGuard)
	api.GET("/users/current", authHandler.CurrentUser)
	api.GET("/search", searchHandler.Query)
	api.DELETE("/search", searchHandler.Close)

	tokenAuth := middleware.Auth(cfg.JWTSecret)

	targets := api.Group("/targets", adminGuard, tokenAuth)
	targets.GET("", replicationHandler.ListTargets)
	targets.POST("", replicationHandler.CreateTarget)
	targets.PUT("/:id", replicationHandler.UpdateTarget)
	targets.DELETE("/:id", replicationHandler.DeleteTarget)
	targets.POST("/ping", replicationHandler.PingTarget)

	policies := api.Group("/policies/replication", adminGuard, tokenAuth)
	policies.GET("", replicationHandler.ListPolicies)
	policies.POST("", replicationHandler.CreatePolicy)
	policies.PUT("/:id", replicationHandler.UpdatePolicy)
	policies.DELETE("/:id", replicationHandler.DeletePolicy)

	confirmation := api.Group("/confirmation", adminGuard, tokenAuth)
	confirmation.GET("", dialogHandler.Pending)
	confirmation.POST("/confirm", dialogHandler.Confirm)
	confirmation.POST("/cancel", dialogHandler.Cancel)

	// --- Probes and metrics ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
