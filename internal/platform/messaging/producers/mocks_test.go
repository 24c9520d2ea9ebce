package producers

import (
	"context"
	"io"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

// MockKafkaWriter mocks KafkaWriter interface
type MockKafkaWriter struct {
	mock.Mock
}

func (m *MockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockKafkaWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockTopicAdmin mocks TopicAdmin interface
type MockTopicAdmin struct {
	mock.Mock
}

func (m *MockTopicAdmin) ReadPartitions(topics ...string) ([]kafka.Partition, error) {
	args := m.Called(topics)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kafka.Partition), args.Error(1)
}

func (m *MockTopicAdmin) CreateTopics(topics ...kafka.TopicConfig) error {
	args := m.Called(topics)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

var _ KafkaWriter = (*MockKafkaWriter)(nil)
var _ TopicAdmin = (*MockTopicAdmin)(nil)
