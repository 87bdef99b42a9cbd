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
		logging.New("totals").Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	app.SetupLogging(cfg, os.Stdout)
	logger := logging.New("totals")
	logger.Info("Starting Totals worker", "address", cfg.ListenAddress(config.WorkerTotals))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Serve(ctx, cfg, config.WorkerTotals); err != nil {
		logger.Error("Totals worker failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Totals worker stopped")
}
