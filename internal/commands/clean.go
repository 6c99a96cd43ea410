package commands

import (
	"fmt"
	"runtime"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/procwatch-dev/procwatch/internal/clean"
	"github.com/procwatch-dev/procwatch/internal/config"
	"github.com/procwatch-dev/procwatch/internal/registry"
	"github.com/procwatch-dev/procwatch/internal/runlog"
	"github.com/procwatch-dev/procwatch/internal/transactions"
)

func newCleanCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Reconcile incoming transaction batches against the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runClean(cmd, cfg)
		},
	}
	return cmd
}

func runClean(cmd *cobra.Command, cfg *config.Config) error {
	logger := newLogger()
	started := time.Now()

	// A missing registry aborts the whole run before any record is touched.
	contracts, err := registry.Load(cfg.Data.RegistryFile)
	if err != nil {
		return err
	}
	idx := registry.BuildIndex(contracts)

	pipeline := clean.NewPipeline(idx, clean.Options{
		StrictThreshold:  cfg.Matching.StrictThreshold,
		LenientThreshold: cfg.Matching.LenientThreshold,
		MillionUnit:      decimal.NewFromInt(cfg.Matching.MillionUnit),
	})

	svc := transactions.NewService(cfg.Data.Dir)
	files, err := svc.ScanIncoming()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no transaction batches in %s/incoming; run generate first", cfg.Data.Dir)
	}

	entry := runlog.NewEntry("clean")
	for _, fi := range files {
		raws, err := svc.ReadBatch(fi.Name)
		if err != nil {
			return err
		}

		recs, err := pipeline.ProcessAll(cmd.Context(), raws, runtime.NumCPU())
		if err != nil {
			return err
		}

		if err := svc.AppendMaster(recs); err != nil {
			return err
		}
		if err := svc.MarkProcessed(fi.Name); err != nil {
			return err
		}

		failed, modified := 0, 0
		for _, rec := range recs {
			failed += len(rec.FailedFields)
			modified += len(rec.ModifiedFields)
		}
		entry.Records += len(recs)
		entry.FailedFields += failed
		entry.ModifiedFields += modified

		logger.Info("batch cleaned", "file", fi.Name, "records", len(recs),
			"failed_fields", failed, "modified_fields", modified)
	}

	entry.Duration = time.Since(started)
	if err := runlog.Append(cfg.Data.Dir, []runlog.Entry{entry}); err != nil {
		return err
	}

	logger.Info("clean complete", "run_id", entry.RunID, "records", entry.Records,
		"duration", entry.Duration)
	return nil
}
