package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/msto63/wishbrick/internal/app"
	"github.com/msto63/wishbrick/pkg/core/config"
	"github.com/msto63/wishbrick/pkg/core/logging"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		logging.New("filter").Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	app.SetupLogging(cfg, os.Stdout)
	logger := logging.New("filter")
	logger.Info("Starting Filter worker", "address", cfg.ListenAddress(config.WorkerFilter))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Serve(ctx, cfg, config.WorkerFilter); err != nil {
		logger.Error("Filter worker failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Filter worker stopped")
}
