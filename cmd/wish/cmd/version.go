package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/msto63/wishbrick/pkg/core/config"
	"github.com/msto63/wishbrick/pkg/core/version"
)

var BuildDate = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Wish Upon a Brick v%s\n", version.Platform)
		fmt.Printf("  Git Commit: %s\n", version.Commit)
		fmt.Printf("  Build Date: %s\n", BuildDate)
		fmt.Printf("  Go Version: %s\n", runtime.Version())
		fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Println("  Components:")
		fmt.Printf("    %-7s %s\n", "client", version.Client)
		for _, name := range config.Workers {
			fmt.Printf("    %-7s %s\n", name, version.ServiceVersion(name))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
