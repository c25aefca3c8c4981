package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/config"
)

// Producer publishes index.complete notices. Writes are synchronous so a
// caller knows the notice reached the brokers before it reports success.
type Producer struct {
	writer *kafka.Writer
	logger *slog.Logger
}

func NewProducer(cfg config.KafkaConfig, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 10 * time.Millisecond,
			MaxAttempts:  1,
			RequiredAcks: kafka.RequireAll,
		},
		logger: slog.Default().With("component", "kafka-producer", "topic", topic),
	}
}

// PublishIndexComplete writes ev keyed by its build id. Retries are left to
// the caller.
func (p *Producer) PublishIndexComplete(ctx context.Context, ev IndexComplete) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding index.complete: %w", err)
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(ev.BuildID), Value: value}); err != nil {
		return fmt.Errorf("publishing index.complete %s: %w", ev.BuildID, err)
	}
	p.logger.Debug("index.complete published", "build_id", ev.BuildID, "docs", ev.Docs)
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// Ping dials the brokers and succeeds as soon as one of them answers.
func Ping(ctx context.Context, brokers []string) error {
	if len(brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}
	var dialer kafka.Dialer
	var errs []error
	for _, broker := range brokers {
		conn, err := dialer.DialContext(ctx, "tcp", broker)
		if err != nil {
			errs = append(errs, fmt.Errorf("dialing %s: %w", broker, err))
			continue
		}
		conn.Close()
		return nil
	}
	return errors.Join(errs...)
}
