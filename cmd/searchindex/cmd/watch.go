package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/consumer"
	apperrors "github.com/Adithya-Monish-Kumar-K/searchindex/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/middleware"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/resilience"
)

func newWatchCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Apply document lifecycle events from Kafka to the stored index",
		Long: `Consume purge events from the kafka.topics.docLifecycle topic. Each purge
removes the document from the index, rewrites the artifacts and publishes an
index.complete notice. /metrics and /health are served on metrics.port.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), root)
		},
	}
}

func runWatch(ctx context.Context, root *rootOptions) error {
	cfg := root.cfg
	if !cfg.Kafka.Enabled {
		return fmt.Errorf("watch needs kafka.enabled: %w", apperrors.ErrInvalidInput)
	}
	log := slog.Default().With("component", "watch")

	a, err := newApp(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.coord.LoadPrevious(ctx); err != nil {
		return err
	}

	checker := health.NewChecker(3 * time.Second)
	checker.RegisterFunc("artifacts", false, func(ctx context.Context) error {
		_, err := a.artifacts.Get(ctx, cfg.Index.SnapshotName)
		if errors.Is(err, apperrors.ErrNotExist) {
			return nil
		}
		return err
	})
	checker.RegisterFunc("kafka", false, func(ctx context.Context) error {
		return kafka.Ping(ctx, cfg.Kafka.Brokers)
	})
	if a.redis != nil {
		checker.RegisterFunc("redis", false, a.redis.Ping)
	}

	if cfg.Metrics.Enabled {
		shutdown, err := metrics.Serve(cfg.Metrics.Port,
			metrics.Route{Path: "/metrics", Handler: middleware.Instrument(a.metrics, "/metrics", metrics.Handler())},
			metrics.Route{Path: "/health", Handler: middleware.Instrument(a.metrics, "/health", checker.Handler())},
		)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Error("metrics server shutdown failed", "error", err)
			}
		}()
	}

	producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.IndexComplete)
	defer producer.Close()

	pub := consumer.Guard(producer, resilience.NewBreaker("index-complete", resilience.BreakerConfig{}))
	handler := consumer.HandleMessage(a.coord, pub, a.metrics)
	kafkaConsumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.Topics.DocLifecycle, handler)
	lifecycle := consumer.New(kafkaConsumer)

	log.Info("watching lifecycle events",
		"topic", cfg.Kafka.Topics.DocLifecycle,
		"group", cfg.Kafka.ConsumerGroup,
		"docs", a.coord.Store().Len(),
	)
	if err := lifecycle.Start(ctx); err != nil {
		log.Error("consumer error", "error", err)
		return err
	}
	log.Info("watch stopped")
	return nil
}
