// Package cmd provides the CLI commands for searchindex.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/logger"
)

type rootOptions struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

// NewRootCmd creates the root command for the searchindex CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "searchindex",
		Short: "Build the client-side search index of a documentation site",
		Long: `searchindex walks parsed document trees, builds a stemmed inverted index
and writes it as a resumable snapshot plus the searchindex.js and
language_data.js files loaded by the browser search page.

Incremental builds reuse the previous snapshot: removed documents are pruned
and only outdated documents are fed again.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.logLevel != "" {
				cfg.Logging.Level = opts.logLevel
			}
			logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to config file (defaults apply when empty)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	cmd.AddCommand(
		newBuildCmd(opts),
		newPurgeCmd(opts),
		newInspectCmd(opts),
		newWatchCmd(opts),
	)
	return cmd
}

// Execute runs the root command until it returns or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}
