package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/payments-ledger/internal/config"
	"github.com/segmentio/kafka-go"
)

// TransactionRecordProducer publishes transaction records onto the transaction topic.
// Messages are hash-partitioned by key, so records keyed by client id keep their order.
type TransactionRecordProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

// NewTransactionRecordProducer creates the producer and ensures the topic exists
func NewTransactionRecordProducer(_ context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*TransactionRecordProducer, error) {
	if cfg.TransactionTopic == "" {
		return nil, fmt.Errorf("kafka transaction topic is not configured")
	}

	if err := ensureTopic(cfg.Brokers, cfg.TransactionTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger); err != nil {
		return nil, fmt.Errorf("failed to ensure transaction topic %s exists: %w", cfg.TransactionTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.TransactionTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: cfg.MaxWait,
	}

	return &TransactionRecordProducer{
		logger: logger.With("topic", cfg.TransactionTopic),
		writer: writer,
		topic:  cfg.TransactionTopic,
	}, nil
}

// Publish writes value as JSON under key. It returns once the broker acknowledged the write.
func (p *TransactionRecordProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction record: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish transaction record", "key", key, "error", err)
		return fmt.Errorf("failed to publish message to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published transaction record", "key", key)
	return nil
}

func (p *TransactionRecordProducer) Close() error {
	p.logger.Info("Closing transaction record producer")
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
