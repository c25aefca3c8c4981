package cmd

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/consumer"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/tracing"
)

func newPurgeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "purge <docname>...",
		Short: "Remove documents from the stored index",
		Long: `Load the stored snapshot, remove every listed document and rewrite the
snapshot and browser artifacts. Unknown docnames are reported and ignored.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := root.cfg
			a, err := newApp(ctx, cfg, prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.coord.LoadPrevious(ctx); err != nil {
				return err
			}
			removed := 0
			for _, docname := range args {
				if a.coord.DocumentPurged(docname) {
					removed++
				} else {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: not indexed\n", docname)
				}
			}
			if removed == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to purge")
				return nil
			}

			buildID := tracing.NewTraceID()
			sum, err := a.coord.Dump(ctx)
			if err != nil {
				return err
			}
			printSummary(cmd, buildID, sum)

			if cfg.Kafka.Enabled {
				producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.IndexComplete)
				defer producer.Close()
				consumer.Announce(ctx, producer, buildID, sum)
			}
			return nil
		},
	}
}
