package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/procwatch-dev/procwatch/internal/config"
	"github.com/procwatch-dev/procwatch/internal/model"
	"github.com/procwatch-dev/procwatch/internal/registry"
	"github.com/procwatch-dev/procwatch/internal/scrape"
)

func newScrapeCommand(configPath *string) *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Ingest the contract registry from the tender page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runScrape(cmd, cfg, fromFile)
		},
	}

	cmd.Flags().StringVar(&fromFile, "file", "", "parse a saved tender page HTML file instead of fetching")
	return cmd
}

func runScrape(cmd *cobra.Command, cfg *config.Config, fromFile string) error {
	logger := newLogger()
	unit := decimal.NewFromInt(cfg.Matching.MillionUnit)

	var contracts []model.Contract
	var err error
	if fromFile != "" {
		f, openErr := os.Open(fromFile)
		if openErr != nil {
			return fmt.Errorf("opening tender page file: %w", openErr)
		}
		defer f.Close()
		contracts, err = scrape.ParseHTML(f, unit)
	} else {
		timeout := time.Duration(cfg.Scrape.TimeoutSeconds) * time.Second
		contracts, err = scrape.Fetch(cmd.Context(), cfg.Scrape.URL, timeout, unit)
	}
	if err != nil {
		return err
	}

	if len(contracts) == 0 {
		return fmt.Errorf("no contracts found in tender page")
	}

	for _, verr := range registry.ValidateContracts(contracts) {
		logger.Warn("registry defect", "error", verr.Error())
	}

	if err := registry.Save(cfg.Data.RegistryFile, contracts); err != nil {
		return err
	}

	logger.Info("registry saved", "contracts", len(contracts), "path", cfg.Data.RegistryFile)
	return nil
}
