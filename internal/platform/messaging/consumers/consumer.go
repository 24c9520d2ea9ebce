package consumers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/payments-ledger/internal/config"
	"github.com/segmentio/kafka-go"
)

type MessageHandler func(ctx context.Context, key []byte, value []byte) error

// Consumer defines the message queue consumer interface
type Consumer interface {
	// Consume blocks, feeding messages to handler until ctx is done or the topic goes idle
	Consume(ctx context.Context, handler MessageHandler) error
	Close() error
}

// MessageReader wraps kafka.Reader methods for testing. Offsets are never
// committed, so there is no commit method.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

const defaultRetryDelay = time.Second

// KafkaConsumer implements Consumer using Kafka
type KafkaConsumer struct {
	reader      MessageReader
	groupID     string
	logger      *slog.Logger
	idleTimeout time.Duration
	retryDelay  time.Duration
}

// RunGroupID returns the consumer group of one processing run. Every run joins a
// fresh group, so it starts at the first offset of each partition.
func RunGroupID(base string, runID uuid.UUID) string {
	return base + "-" + runID.String()
}

// NewKafkaConsumer creates a consumer that replays the whole topic for the run
// identified by runID. The ledger of a run starts empty, so resuming from the
// offsets of an earlier run would apply disputes and deposits without the
// history they depend on.
func NewKafkaConsumer(_ context.Context, logger *slog.Logger, cfg *config.KafkaConfig, runID uuid.UUID) *KafkaConsumer {
	groupID := RunGroupID(cfg.ConsumerGroup, runID)
	return &KafkaConsumer{
		groupID: groupID,
		logger:  logger.With("topic", cfg.TransactionTopic, "group_id", groupID),
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     []string{cfg.Brokers},
			Topic:       cfg.TransactionTopic,
			GroupID:     groupID,
			MinBytes:    cfg.MinBytes,
			MaxBytes:    cfg.MaxBytes,
			MaxWait:     cfg.MaxWait,
			StartOffset: kafka.FirstOffset,
		}),
		idleTimeout: cfg.IdleTimeout,
		retryDelay:  defaultRetryDelay,
	}
}

// Consume processes messages in partition order without committing offsets.
// It returns nil once no message has arrived for the idle timeout, when ctx is
// canceled, or when the reader is closed.
func (c *KafkaConsumer) Consume(ctx context.Context, handler MessageHandler) error {
	c.logger.Info("Consuming Kafka topic", "idle_timeout", c.idleTimeout)

	for {
		msg, err := c.fetch(ctx)
		if err != nil {
			switch {
			case ctx.Err() != nil:
				c.logger.Info("Context canceled, stopping consumer")
				return nil
			case errors.Is(err, context.DeadlineExceeded):
				c.logger.Info("No message within idle timeout, stopping consumer", "idle_timeout", c.idleTimeout)
				return nil
			case errors.Is(err, io.EOF):
				c.logger.Info("Reader closed, stopping consumer")
				return nil
			}

			c.logger.Error("Failed to fetch message from Kafka", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.retryDelay):
			}
			continue
		}

		c.logger.Debug("Received message from Kafka",
			"partition", msg.Partition,
			"offset", msg.Offset,
			"key", string(msg.Key),
		)

		if err := handler(ctx, msg.Key, msg.Value); err != nil {
			c.logger.Error("Failed to process message",
				"partition", msg.Partition,
				"offset", msg.Offset,
				"key", string(msg.Key),
				"error", err,
			)
		}
	}
}

func (c *KafkaConsumer) fetch(ctx context.Context) (kafka.Message, error) {
	if c.idleTimeout <= 0 {
		return c.reader.FetchMessage(ctx)
	}
	fetchCtx, cancel := context.WithTimeout(ctx, c.idleTimeout)
	defer cancel()
	return c.reader.FetchMessage(fetchCtx)
}

func (c *KafkaConsumer) Close() error {
	if c.reader != nil {
		return c.reader.Close()
	}
	return nil
}
