package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/procwatch-dev/procwatch/internal/config"
	"github.com/procwatch-dev/procwatch/internal/export"
	"github.com/procwatch-dev/procwatch/internal/transactions"
)

func newExportCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Publish pipeline outputs to the BI directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runExport(cfg)
		},
	}
	return cmd
}

func runExport(cfg *config.Config) error {
	logger := newLogger()
	svc := transactions.NewService(cfg.Data.Dir)

	datasets := []export.Dataset{
		{Name: "invoices", Path: svc.MasterPath()},
		{Name: "risks", Path: svc.ScoredPath()},
		{Name: "annual_summary", Path: filepath.Join(cfg.Data.Dir, annualSummaryFile)},
		{Name: "monthly_summary", Path: filepath.Join(cfg.Data.Dir, monthlySummaryFile)},
	}

	published, err := export.NewExporter(cfg.BI.Dir).ExportAll(datasets)
	if err != nil {
		return err
	}

	for _, p := range published {
		logger.Info("published", "file", p)
	}
	return nil
}
