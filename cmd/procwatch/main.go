package main

import (
	"os"

	"github.com/procwatch-dev/procwatch/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
