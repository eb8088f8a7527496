// Package main provides the entry point for the directory server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"
	"golang.org/x/sync/errgroup"

	"github.com/italianiuk/italianiuk-server/internal/di"
	"github.com/italianiuk/italianiuk-server/internal/di/providers"
	"github.com/italianiuk/italianiuk-server/internal/logger"
)

func main() {
	// Create DI container
	injector := di.NewContainer()

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	srv := do.MustInvoke[*providers.HTTPServerHandle](injector)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server starting", "addr", srv.Addr)
		return srv.ListenAndServe()
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down server gracefully...")

		// The container shuts down in reverse dependency order: the HTTP
		// server drains first, then the rate limiter and the search index.
		if err := injector.Shutdown(); err != nil {
			log.Error("Shutdown error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}

	log.Info("Arrivederci")
}
