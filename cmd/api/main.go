// Package main provides the entry point for the bookz server.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/bookzapp/bookz-server/internal/di"
	"github.com/bookzapp/bookz-server/internal/logger"
)

func main() {
	injector := di.NewContainer()

	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down gracefully")

	// The container shuts providers down in reverse dependency order,
	// so the HTTP server drains before the database pool closes.
	if err := injector.Shutdown(); err != nil {
		log.Error("shutdown error", "error", err)
	}

	log.Info("bye")
}
