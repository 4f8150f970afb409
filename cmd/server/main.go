package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/registryops/console-gateway/internal/api"
	"github.com/registryops/console-gateway/internal/bus"
	"github.com/registryops/console-gateway/internal/console"
	"github.com/registryops/console-gateway/internal/core/service"
	"github.com/registryops/console-gateway/internal/infrastructure/directory"
	"github.com/registryops/console-gateway/internal/pkg/config"
	"github.com/registryops/console-gateway/pkg/logger"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	core, err := directory.New(cfg.CoreURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create registry core client")
	}

	hub := bus.NewHub()
	sessions := service.NewSessionService(core, log)
	replications := service.NewReplicationService(core, hub, log)
	messages := service.NewMessageService(hub, log)

	// Shell widgets ride on the hub; handlers publish into it and read the
	// widgets' state back out.
	dialog := console.NewConfirmationDialog(hub, console.MapTranslator{}, log)
	defer dialog.Close()

	banner := console.NewBanner(hub.Messages, cfg.BannerDismiss, nil)
	defer banner.Close()
	appBanner := console.NewBanner(hub.AppMessages, 0, nil)
	defer appBanner.Close()

	search := console.NewSearchCoordinator(hub, cfg.SearchDebounce, nil, core.Search, log)
	search.Start()
	defer search.Stop()

	policyView := console.NewPolicyView(hub, core.ListPolicies)
	defer policyView.Close()

	deletions := console.NewDeletionExecutor(hub, replications, messages, log)
	defer deletions.Close()

	e := api.NewRouter(cfg, api.Deps{
		Sessions:     sessions,
		Replications: replications,
		Messages:     messages,
		Hub:          hub,
		Dialog:       dialog,
		Search:       search,
		Policies:     policyView,
	}, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("core_url", cfg.CoreURL).Msg("console gateway started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("graceful shutdown failed")
	}
}
