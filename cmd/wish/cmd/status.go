package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/wishbrick/internal/app"
	"github.com/msto63/wishbrick/internal/client"
	"github.com/msto63/wishbrick/pkg/core/config"
	"github.com/msto63/wishbrick/pkg/core/health"
)

var statusTimeout time.Duration

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of all workers",
	Long: `Show the status of all workers.

Each worker's gRPC health service is queried at its configured address.
Workers started with 'wish start' also report their PID.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().DurationVar(&statusTimeout, "timeout", 2*time.Second, "timeout per worker")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("configuration", err)
		return err
	}

	fmt.Println("Wish Upon a Brick Status")
	fmt.Println("========================")
	fmt.Println()

	c := client.New(cfg)
	defer c.Close()

	report, err := c.Health(context.Background(), statusTimeout)
	if err != nil {
		printError("health check", err)
		return err
	}

	results := make(map[string]health.CheckResult, len(report.Checks))
	for _, r := range report.Checks {
		results[r.Name] = r
	}

	fmt.Println("Workers:")
	fmt.Println("--------")
	for _, name := range config.Workers {
		r := results[name]
		icon, text := "[-]", "stopped"
		if r.Status == health.StatusHealthy {
			icon, text = "[+]", "running"
		}
		if running, pid := app.Running(name); running {
			text += fmt.Sprintf(", PID %d", pid)
		}
		fmt.Printf("  %s %-7s %-22s (gRPC) - %s\n", icon, name, cfg.GetServiceAddress(name), text)
	}
	fmt.Println()

	if report.Status == health.StatusHealthy {
		fmt.Println("All workers are running.")
	} else {
		fmt.Println("Some workers are not running.")
		fmt.Println("Start them with: wish start")
	}
	return nil
}
