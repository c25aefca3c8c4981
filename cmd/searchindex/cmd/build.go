package cmd

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/consumer"
	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/doctree"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/tracing"
)

type buildOptions struct {
	docsDir string
	only    []string
	workers int
	fresh   bool
}

func newBuildCmd(root *rootOptions) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build or update the search index from document trees",
		Long: `Load every document tree under --docs, reuse the previous snapshot when it
matches the configured envVersion, and write the snapshot, searchindex.js and
language_data.js.

Without --only every document is fed again. With --only the listed documents
and any document missing from the previous index are fed; the rest are kept
from the snapshot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.docsDir, "docs", "d", "", "directory of document tree files")
	cmd.Flags().StringSliceVar(&opts.only, "only", nil, "re-feed only these docnames (comma separated)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", 0, "parallel feed workers (default index.workers)")
	cmd.Flags().BoolVar(&opts.fresh, "fresh", false, "ignore the previous snapshot")
	_ = cmd.MarkFlagRequired("docs")

	return cmd
}

func runBuild(cmd *cobra.Command, root *rootOptions, opts *buildOptions) error {
	cfg := root.cfg
	buildID := tracing.NewTraceID()
	ctx, span := tracing.StartSpan(cmd.Context(), "build", buildID)
	ctx = logger.WithBuildID(ctx, buildID)
	log := logger.FromContext(ctx).With("component", "build")

	a, err := newApp(ctx, cfg, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer a.Close()

	docs, err := doctree.LoadDir(opts.docsDir)
	if err != nil {
		return err
	}
	workers := opts.workers
	if workers <= 0 {
		workers = cfg.Index.Workers
	}

	if !opts.fresh {
		if err := a.coord.LoadPrevious(ctx); err != nil {
			return err
		}
	}
	var outdated []string
	if cmd.Flags().Changed("only") {
		outdated = append([]string{}, opts.only...)
	}
	if err := a.coord.Update(ctx, docs, outdated, workers); err != nil {
		return err
	}
	sum, err := a.coord.Dump(ctx)
	if err != nil {
		return err
	}
	span.SetAttr("docs", sum.Docs)
	span.End()
	span.Log(log)

	printSummary(cmd, buildID, sum)

	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.IndexComplete)
		defer producer.Close()
		consumer.Announce(ctx, producer, buildID, sum)
	}
	return nil
}

func printSummary(cmd *cobra.Command, buildID string, sum indexer.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "build %s\n", buildID)
	fmt.Fprintf(out, "  documents:   %d\n", sum.Docs)
	fmt.Fprintf(out, "  terms:       %d\n", sum.Terms)
	fmt.Fprintf(out, "  title terms: %d\n", sum.TitleTerms)
	fmt.Fprintf(out, "  format:      %s (envversion %s)\n", sum.Format, sum.EnvVersion)
}
