package main

import (
	"os"

	"github.com/msto63/wishbrick/cmd/wish/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
