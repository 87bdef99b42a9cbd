package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/msto63/wishbrick/internal/app"
	"github.com/msto63/wishbrick/internal/client"
	"github.com/msto63/wishbrick/internal/tui"
	"github.com/msto63/wishbrick/internal/wishlist"
	"github.com/msto63/wishbrick/internal/wishlist/store"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive wish list client",
	Long: `Start the interactive client.

The wish list lives for the session and starts with three example sets.
Sort, filter, search and totals need the workers; start them with
'wish start' or 'wish serve'. A call to a worker that is not running
waits until it comes up unless client.fail_fast is set.

Navigation:
  Enter     - submit the typed choice
  Esc       - back to the menu
  Ctrl+C    - quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("configuration", err)
		return err
	}

	logFile, err := app.ClientLogFile(cfg)
	if err != nil {
		printError("log file", err)
		return err
	}
	defer logFile.Close()
	app.SetupLogging(cfg, logFile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.New(ctx, cfg.Store.Driver, wishlist.Seed())
	if err != nil {
		printError("record store", err)
		return err
	}
	defer st.Close()

	c := client.New(cfg)
	defer c.Close()

	model := tui.New(ctx, st, c, tui.Options{
		Pause:      cfg.Client.Pause.Duration,
		EmptyPause: cfg.Client.EmptyPause.Duration,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		return err
	}

	if m, ok := final.(tui.Model); ok && m.Quitting() {
		fmt.Println(tui.Farewell)
	}
	return nil
}
