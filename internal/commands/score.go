package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/procwatch-dev/procwatch/internal/config"
	"github.com/procwatch-dev/procwatch/internal/registry"
	"github.com/procwatch-dev/procwatch/internal/risk"
	"github.com/procwatch-dev/procwatch/internal/runlog"
	"github.com/procwatch-dev/procwatch/internal/transactions"
)

func newScoreCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Assign composite risk scores to cleaned transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runScore(cfg)
		},
	}
	return cmd
}

func runScore(cfg *config.Config) error {
	logger := newLogger()
	started := time.Now()

	contracts, err := registry.Load(cfg.Data.RegistryFile)
	if err != nil {
		return err
	}

	svc := transactions.NewService(cfg.Data.Dir)
	recs, err := svc.ReadMaster()
	if err != nil {
		return err
	}

	scorer := risk.NewScorer(cfg.Risk, registry.BuildLookup(contracts))
	scorer.ScoreAll(recs)

	if err := svc.WriteScored(recs); err != nil {
		return err
	}

	entry := runlog.NewEntry("score")
	entry.Records = len(recs)
	entry.Duration = time.Since(started)
	if err := runlog.Append(cfg.Data.Dir, []runlog.Entry{entry}); err != nil {
		return err
	}

	logger.Info("scoring complete", "run_id", entry.RunID, "records", len(recs),
		"output", svc.ScoredPath())
	return nil
}
