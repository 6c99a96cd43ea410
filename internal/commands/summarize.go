package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/procwatch-dev/procwatch/internal/config"
	"github.com/procwatch-dev/procwatch/internal/registry"
	"github.com/procwatch-dev/procwatch/internal/summary"
	"github.com/procwatch-dev/procwatch/internal/transactions"
)

const (
	annualSummaryFile  = "annual_summary.csv"
	monthlySummaryFile = "monthly_summary.csv"
)

func newSummarizeCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Build annual and monthly supplier spend summaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runSummarize(cfg)
		},
	}
	return cmd
}

func runSummarize(cfg *config.Config) error {
	logger := newLogger()

	contracts, err := registry.Load(cfg.Data.RegistryFile)
	if err != nil {
		return err
	}
	lookup := registry.BuildLookup(contracts)

	svc := transactions.NewService(cfg.Data.Dir)
	recs, err := svc.ReadScored()
	if err != nil {
		return err
	}

	annual := summary.ComputeAnnual(recs, lookup)
	monthly := summary.ComputeMonthly(recs, lookup)

	if err := writeSummary(filepath.Join(cfg.Data.Dir, annualSummaryFile), func(f *os.File) error {
		return summary.WriteAnnualCSV(f, annual)
	}); err != nil {
		return err
	}
	if err := writeSummary(filepath.Join(cfg.Data.Dir, monthlySummaryFile), func(f *os.File) error {
		return summary.WriteMonthlyCSV(f, monthly)
	}); err != nil {
		return err
	}

	logger.Info("summaries written", "annual_rows", len(annual), "monthly_rows", len(monthly))
	return nil
}

func writeSummary(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
