// Package kafka carries build lifecycle events over segmentio/kafka-go.
// Document-purge events are consumed through a MessageHandler callback and
// index-complete notices are published as JSON after each artifact write.
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

// ErrSkip tells the consumer to commit a message the handler could not use,
// such as a malformed event that would fail again on redelivery.
var ErrSkip = errors.New("skip message")

// MessageHandler is called once per lifecycle message. A nil error or one
// wrapping ErrSkip commits the message; any other error retries it.
type MessageHandler func(ctx context.Context, key []byte, value []byte) error

const (
	minRedeliveryDelay = 500 * time.Millisecond
	maxRedeliveryDelay = 30 * time.Second
)

type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer applies lifecycle messages strictly in partition order: a message
// that fails is handed to the handler again before the next one is fetched.
type Consumer struct {
	reader  reader
	handler MessageHandler
	delay   time.Duration
	logger  *slog.Logger
}

func NewConsumer(cfg config.KafkaConfig, topic string, handler MessageHandler) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       topic,
		GroupID:     cfg.ConsumerGroup,
		MinBytes:    1,
		MaxBytes:    1e6,
		MaxWait:     time.Second,
		StartOffset: kafka.FirstOffset,
	})
	return newConsumer(r, topic, handler)
}

func newConsumer(r reader, topic string, handler MessageHandler) *Consumer {
	return &Consumer{
		reader:  r,
		handler: handler,
		delay:   minRedeliveryDelay,
		logger:  slog.Default().With("component", "kafka-consumer", "topic", topic),
	}
}

// Start fetches and handles messages until ctx is cancelled, then closes the
// reader. Cancellation is not an error.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("consumer started")
	defer c.reader.Close()
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("consumer stopping", "reason", ctx.Err())
				return nil
			}
			c.logger.Error("failed to fetch message", "error", err)
			if !sleep(ctx, c.delay) {
				return nil
			}
			continue
		}
		if !c.process(ctx, msg) {
			return nil
		}
	}
}

// process hands msg to the handler until it is accepted or skipped and
// commits it. It returns false when ctx ended first.
func (c *Consumer) process(ctx context.Context, msg kafka.Message) bool {
	delay := c.delay
	for attempt := 1; ; attempt++ {
		err := c.handler(ctx, msg.Key, msg.Value)
		if err == nil || errors.Is(err, ErrSkip) {
			break
		}
		c.logger.Error("failed to handle message, redelivering",
			"partition", msg.Partition,
			"offset", msg.Offset,
			"attempt", attempt,
			"retry_in", delay,
			"error", err,
		)
		if !sleep(ctx, delay) {
			return false
		}
		delay = min(2*delay, maxRedeliveryDelay)
	}
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		if ctx.Err() != nil {
			return false
		}
		c.logger.Error("failed to commit message", "partition", msg.Partition, "offset", msg.Offset, "error", err)
	}
	return true
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// DecodeJSON unmarshals a message value into T. Undecodable values wrap
// ErrSkip.
func DecodeJSON[T any](value []byte) (T, error) {
	var result T
	if err := json.Unmarshal(value, &result); err != nil {
		return result, fmt.Errorf("decoding kafka message: %v: %w", err, ErrSkip)
	}
	return result, nil
}
