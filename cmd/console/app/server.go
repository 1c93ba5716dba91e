// Package app provides the console server application.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kart-io/atlas/cmd/console/app/options"
	"github.com/kart-io/atlas/pkg/infra/app"
)

const (
	// Name is the name of the application.
	Name = "atlas-console"

	// commandDesc is the description of the command.
	commandDesc = `Atlas Console Server

The authorization and navigation backend for the Atlas operator console.

This server provides:
  - JWT authentication with token revocation
  - Session-scoped permission caching with TTL and singleflight refresh
  - Menu tree compilation into frontend route definitions
  - User, role, menu, and API resource management
  - Login audit trail
  - Optional etcd service registration for Traefik`
)

// NewApp creates and returns a new App object with default parameters.
func NewApp() *app.App {
	opts := options.NewServerOptions()
	application := app.NewApp(
		app.WithName(Name),
		app.WithDescription(commandDesc),
		app.WithEnvPrefix("ATLAS"),
		app.WithOptions(opts),
		app.WithRunFunc(run(opts)),
	)

	return application
}

// run contains the main logic for initializing and running the server.
func run(opts *options.ServerOptions) app.RunFunc {
	return func() error {
		// Load the configuration options
		cfg, err := opts.Config()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		ctx := setupSignalContext()

		// Build the server using the configuration
		server, err := cfg.NewServer(ctx)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		// Run the server with signal context for graceful shutdown
		return server.Run(ctx)
	}
}

// setupSignalContext returns a context that is cancelled on SIGINT or SIGTERM.
func setupSignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		cancel()
		<-c
		os.Exit(1)
	}()
	return ctx
}
