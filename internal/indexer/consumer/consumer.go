// Package consumer applies document lifecycle events read from Kafka to the
// search index: every purge removes the document, rewrites the index
// artifacts and announces the new index.
package consumer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/resilience"
	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/tracing"
)

// Index is the part of the coordinator driven by lifecycle events.
type Index interface {
	DocumentPurged(docname string) bool
	Dump(ctx context.Context) (indexer.Summary, error)
}

// Publisher announces rewritten indexes.
type Publisher interface {
	PublishIndexComplete(ctx context.Context, ev kafka.IndexComplete) error
}

// Guard routes publishes through a breaker. While the breaker is open
// publishes fail fast with an error wrapping resilience.ErrOpen.
func Guard(pub Publisher, b *resilience.Breaker) Publisher {
	return guardedPublisher{pub: pub, breaker: b}
}

type guardedPublisher struct {
	pub     Publisher
	breaker *resilience.Breaker
}

func (g guardedPublisher) PublishIndexComplete(ctx context.Context, ev kafka.IndexComplete) error {
	return g.breaker.Do(func() error {
		return g.pub.PublishIndexComplete(ctx, ev)
	})
}

// LifecycleConsumer wraps a Kafka consumer on the lifecycle topic.
type LifecycleConsumer struct {
	consumer *kafka.Consumer
	logger   *slog.Logger
}

// New creates a LifecycleConsumer backed by the given Kafka consumer.
func New(kafkaConsumer *kafka.Consumer) *LifecycleConsumer {
	return &LifecycleConsumer{
		consumer: kafkaConsumer,
		logger:   slog.Default().With("component", "lifecycle-consumer"),
	}
}

// Start begins consuming Kafka messages. It blocks until ctx is cancelled.
func (lc *LifecycleConsumer) Start(ctx context.Context) error {
	lc.logger.Info("lifecycle consumer starting")
	return lc.consumer.Start(ctx)
}

// HandleMessage returns a MessageHandler applying purge events to idx.
// Malformed events are skipped. A failed dump is returned without ErrSkip so
// the event is redelivered, and the redelivery dumps again even though the
// document is already gone from the store. pub may be nil; publishing is retried and its
// failure does not fail the event.
func HandleMessage(idx Index, pub Publisher, m *metrics.Metrics) kafka.MessageHandler {
	logger := slog.Default().With("component", "lifecycle-consumer")
	// set while a purge is applied in memory but not yet written out
	var dirty atomic.Bool
	return func(ctx context.Context, key []byte, value []byte) error {
		event, err := kafka.DecodeJSON[kafka.LifecycleEvent](value)
		if err == nil {
			err = event.Validate()
		}
		if err != nil {
			m.EventsTotal.WithLabelValues("invalid", "skipped").Inc()
			logger.Warn("skipping lifecycle event", "key", string(key), "error", err)
			return err
		}

		if !idx.DocumentPurged(event.Docname) && !dirty.Load() {
			m.EventsTotal.WithLabelValues(event.Type, "ignored").Inc()
			logger.Debug("purged document was not indexed", "docname", event.Docname)
			return nil
		}

		buildID := tracing.NewTraceID()
		ctx, span := tracing.StartSpan(ctx, "purge", buildID)
		span.SetAttr("docname", event.Docname)
		defer func() {
			span.End()
			span.Log(logger)
		}()

		dirty.Store(true)
		sum, err := idx.Dump(ctx)
		if err != nil {
			m.EventsTotal.WithLabelValues(event.Type, "error").Inc()
			return fmt.Errorf("rewriting index after purging %s: %w", event.Docname, err)
		}
		dirty.Store(false)
		m.EventsTotal.WithLabelValues(event.Type, "ok").Inc()
		logger.Info("document purged from index", "docname", event.Docname, "docs", sum.Docs, "build_id", buildID)

		if pub != nil {
			Announce(ctx, pub, buildID, sum)
		}
		return nil
	}
}

// Announce publishes an index.complete notice for sum, retrying transient
// failures. Errors are logged only.
func Announce(ctx context.Context, pub Publisher, buildID string, sum indexer.Summary) {
	ev := kafka.IndexComplete{
		BuildID:    buildID,
		Docs:       sum.Docs,
		Terms:      sum.Terms,
		Format:     sum.Format,
		EnvVersion: sum.EnvVersion,
	}
	err := resilience.Retry(ctx, "publish-index-complete", resilience.RetryConfig{}, func() error {
		err := pub.PublishIndexComplete(ctx, ev)
		if errors.Is(err, context.Canceled) || errors.Is(err, resilience.ErrOpen) {
			return resilience.Permanent(err)
		}
		return err
	})
	if err != nil {
		slog.Default().With("component", "lifecycle-consumer").Error("failed to announce index",
			"build_id", buildID,
			"error", err,
		)
	}
}
