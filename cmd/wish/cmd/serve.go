package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/wishbrick/internal/app"
	"github.com/msto63/wishbrick/pkg/core/config"
	"github.com/msto63/wishbrick/pkg/core/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve [worker...]",
	Short: "Run workers in the foreground",
	Long: `Run one or more workers in the foreground until interrupted.

Without arguments all four workers run in this process.

Examples:
  wish serve               # all workers
  wish serve sort totals   # only sort and totals`,
	ValidArgs: config.Workers,
	Args:      cobra.OnlyValidArgs,
	RunE:      runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("configuration", err)
		return err
	}
	app.SetupLogging(cfg, os.Stdout)
	logger := logging.New("wish")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	names := args
	if len(names) == 0 {
		names = config.Workers
	}
	logger.Info("Starting workers", "workers", names)

	if err := app.Serve(ctx, cfg, names...); err != nil {
		logger.Error("Worker failed", "error", err)
		return err
	}

	logger.Info("Workers stopped")
	return nil
}
