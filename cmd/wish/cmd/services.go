package cmd

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/wishbrick/internal/app"
	"github.com/msto63/wishbrick/pkg/core/config"
)

var logLines int

var startCmd = &cobra.Command{
	Use:   "start [worker...]",
	Short: "Start workers in the background",
	Long: `Start one or more workers as background processes.

Without arguments all workers are started.

Examples:
  wish start              # all workers
  wish start sort         # only the sort worker`,
	ValidArgs: config.Workers,
	Args:      cobra.OnlyValidArgs,
	RunE:      runStart,
}

var stopCmd = &cobra.Command{
	Use:   "stop [worker...]",
	Short: "Stop background workers",
	Long: `Stop one or more background workers.

Without arguments all workers are stopped.`,
	ValidArgs: config.Workers,
	Args:      cobra.OnlyValidArgs,
	RunE:      runStop,
}

var restartCmd = &cobra.Command{
	Use:       "restart [worker...]",
	Short:     "Restart background workers",
	ValidArgs: config.Workers,
	Args:      cobra.OnlyValidArgs,
	RunE:      runRestart,
}

var logsCmd = &cobra.Command{
	Use:       "logs <worker>",
	Short:     "Show the log of a background worker",
	ValidArgs: config.Workers,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := app.Tail(args[0], logLines)
		if err != nil {
			printError(args[0], err)
			return err
		}
		for _, l := range lines {
			fmt.Println(l)
		}
		return nil
	},
}

func init() {
	logsCmd.Flags().IntVarP(&logLines, "lines", "n", 50, "number of lines")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(restartCmd)
	rootCmd.AddCommand(logsCmd)
}

func workersToManage(args []string) []string {
	if len(args) == 0 {
		return slices.Clone(config.Workers)
	}
	return args
}

// serveArgs forwards --config to the background process.
func serveArgs() []string {
	if cfgFile == "" {
		return nil
	}
	abs, err := filepath.Abs(cfgFile)
	if err != nil {
		abs = cfgFile
	}
	return []string{"--config", abs}
}

func runStart(cmd *cobra.Command, args []string) error {
	names := workersToManage(args)

	fmt.Println("Wish Upon a Brick - starting workers")
	fmt.Println(strings.Repeat("=", 40))

	started := 0
	for _, name := range names {
		fmt.Printf("  %s: ", name)
		if pid, err := app.Start(name, serveArgs()...); err != nil {
			fmt.Printf("FAILED - %v\n", err)
		} else {
			fmt.Printf("started (PID %d)\n", pid)
			started++
		}
	}

	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Started: %d/%d workers\n", started, len(names))

	if started > 0 {
		fmt.Println()
		fmt.Println("Log files:", filepath.Join(app.RuntimeDir(), "logs"))
		fmt.Println("Check status: wish status")
	}
	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	names := workersToManage(args)
	if len(args) == 0 {
		slices.Reverse(names)
	}

	fmt.Println("Wish Upon a Brick - stopping workers")
	fmt.Println(strings.Repeat("=", 40))

	stopped := 0
	for _, name := range names {
		fmt.Printf("  %s: ", name)
		if err := app.Stop(name); err != nil {
			fmt.Printf("FAILED - %v\n", err)
		} else {
			fmt.Println("stopped")
			stopped++
		}
	}

	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Stopped: %d/%d workers\n", stopped, len(names))
	return nil
}

func runRestart(cmd *cobra.Command, args []string) error {
	names := workersToManage(args)

	fmt.Println("Wish Upon a Brick - restarting workers")
	fmt.Println(strings.Repeat("=", 40))

	for _, name := range names {
		fmt.Printf("  %s: ", name)
		if running, _ := app.Running(name); running {
			if err := app.Stop(name); err != nil {
				fmt.Printf("stop failed - %v\n", err)
				continue
			}
			fmt.Print("stopped -> ")
		}
		if pid, err := app.Start(name, serveArgs()...); err != nil {
			fmt.Printf("start failed - %v\n", err)
		} else {
			fmt.Printf("started (PID %d)\n", pid)
		}
	}

	fmt.Println(strings.Repeat("-", 40))
	fmt.Println("Check status: wish status")
	return nil
}
