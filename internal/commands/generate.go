package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/procwatch-dev/procwatch/internal/config"
	"github.com/procwatch-dev/procwatch/internal/generate"
	"github.com/procwatch-dev/procwatch/internal/registry"
	"github.com/procwatch-dev/procwatch/internal/transactions"
)

func newGenerateCommand(configPath *string) *cobra.Command {
	var records int

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic messy transaction batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if records > 0 {
				cfg.Generator.Records = records
			}
			return runGenerate(cfg)
		},
	}

	cmd.Flags().IntVar(&records, "records", 0, "number of records (overrides config)")
	return cmd
}

func runGenerate(cfg *config.Config) error {
	logger := newLogger()

	contracts, err := registry.Load(cfg.Data.RegistryFile)
	if err != nil {
		return err
	}
	if len(contracts) == 0 {
		return fmt.Errorf("contract registry is empty; run scrape first")
	}

	svc := transactions.NewService(cfg.Data.Dir)

	startSeq, err := svc.LastInvoiceSeq()
	if err != nil {
		return err
	}
	if startSeq < cfg.Generator.StartSeq {
		startSeq = cfg.Generator.StartSeq
	}

	unit := decimal.NewFromInt(cfg.Matching.MillionUnit)
	gen := generate.New(cfg.Generator.Seed, contracts, cfg.Generator.MessProbability, unit)
	raws := gen.Batch(cfg.Generator.Records, startSeq)

	name := fmt.Sprintf("transactions_%s.csv", time.Now().Format("20060102_150405"))
	if err := svc.WriteBatch(name, raws); err != nil {
		return err
	}

	logger.Info("batch generated", "file", name, "records", len(raws))
	return nil
}
