package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/procwatch-dev/procwatch/internal/config"
	"github.com/procwatch-dev/procwatch/internal/runlog"
)

func newRunsCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show the pipeline run history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runRuns(cmd, cfg)
		},
	}
	return cmd
}

func runRuns(cmd *cobra.Command, cfg *config.Config) error {
	entries, err := runlog.Read(cfg.Data.Dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIMESTAMP\tCOMMAND\tRECORDS\tFAILED\tMODIFIED\tDURATION\tRUN ID")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			e.Timestamp.Format(time.RFC3339), e.Command, e.Records,
			e.FailedFields, e.ModifiedFields, e.Duration, e.RunID)
	}
	return w.Flush()
}
