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
		logging.New("search").Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	app.SetupLogging(cfg, os.Stdout)
	logger := logging.New("search")
	logger.Info("Starting Search worker", "address", cfg.ListenAddress(config.WorkerSearch))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Serve(ctx, cfg, config.WorkerSearch); err != nil {
		logger.Error("Search worker failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Search worker stopped")
}
