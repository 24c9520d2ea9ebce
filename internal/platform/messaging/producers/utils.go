package producers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	topicReadAttempts   = 5
	topicReadRetryDelay = 2 * time.Second
)

// topicProvisioner creates a topic unless its partitions can already be read
type topicProvisioner struct {
	admin      TopicAdmin
	attempts   int
	retryDelay time.Duration
	logger     *slog.Logger
}

func newTopicProvisioner(admin TopicAdmin, logger *slog.Logger) *topicProvisioner {
	return &topicProvisioner{
		admin:      admin,
		attempts:   topicReadAttempts,
		retryDelay: topicReadRetryDelay,
		logger:     logger,
	}
}

// ensure creates topicName if none of its partitions are visible after the read retries
func (p *topicProvisioner) ensure(topicName string, numPartitions, replicationFactor int) error {
	var partitions []kafka.Partition
	var err error

	p.logger.Info("Checking if Kafka topic exists", "topic", topicName)
	for i := 0; i < p.attempts; i++ {
		partitions, err = p.admin.ReadPartitions(topicName)
		if err == nil {
			break
		}
		p.logger.Warn("Failed to read partitions, retrying...", "topic", topicName, "attempt", i+1, "error", err)
		if i < p.attempts-1 {
			time.Sleep(p.retryDelay)
		}
	}

	if len(partitions) > 0 {
		p.logger.Info("Kafka topic already exists", "topic", topicName, "partitions", len(partitions))
		return nil
	}

	topicConfig := kafka.TopicConfig{
		Topic:             topicName,
		NumPartitions:     numPartitions,
		ReplicationFactor: replicationFactor,
	}
	if topicConfig.NumPartitions <= 0 {
		topicConfig.NumPartitions = 1
	}
	if topicConfig.ReplicationFactor <= 0 {
		topicConfig.ReplicationFactor = 1
	}

	p.logger.Info("Creating Kafka topic", "topic", topicName, "partitions", topicConfig.NumPartitions, "last_read_error", err)
	if creationErr := p.admin.CreateTopics(topicConfig); creationErr != nil {
		return fmt.Errorf("failed to create kafka topic %s: %w", topicName, creationErr)
	}
	p.logger.Info("Successfully created Kafka topic", "topic", topicName)
	return nil
}

// ensureTopic dials brokers and provisions topicName
func ensureTopic(brokers, topicName string, numPartitions, replicationFactor int, logger *slog.Logger) error {
	conn, err := kafka.Dial("tcp", brokers)
	if err != nil {
		return fmt.Errorf("failed to dial kafka: %w", err)
	}
	defer conn.Close()

	return newTopicProvisioner(conn, logger).ensure(topicName, numPartitions, replicationFactor)
}
