// Package commands wires the procwatch CLI.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/procwatch-dev/procwatch/internal/buildinfo"
	"github.com/procwatch-dev/procwatch/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "procwatch",
		Short:   "Procurement transaction reconciliation and risk scoring",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.FileName, "path to procwatch.yaml")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newScrapeCommand(&configPath))
	rootCmd.AddCommand(newGenerateCommand(&configPath))
	rootCmd.AddCommand(newCleanCommand(&configPath))
	rootCmd.AddCommand(newScoreCommand(&configPath))
	rootCmd.AddCommand(newSummarizeCommand(&configPath))
	rootCmd.AddCommand(newExportCommand(&configPath))
	rootCmd.AddCommand(newRunsCommand(&configPath))

	return rootCmd
}

// newLogger returns the CLI logger. Library packages stay silent; all
// operational logging happens at the command layer.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}
