package producers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/payments-ledger/internal/config"
	"github.com/payments-ledger/internal/domain/shared"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewTransactionRecordProducer_RequiresTopic(t *testing.T) {
	producer, err := NewTransactionRecordProducer(context.Background(), newTestLogger(), &config.KafkaConfig{})
	require.Error(t, err)
	assert.Nil(t, producer)
}

func TestTransactionRecordProducer_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("SuccessfulPublish", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &TransactionRecordProducer{logger: newTestLogger(), writer: mockWriter, topic: "transactions"}

		record := shared.TransactionRecord{Type: "deposit", Client: "3", Tx: "11", Amount: "2.5000"}
		expected, _ := json.Marshal(record)

		mockWriter.On("WriteMessages", ctx, mock.MatchedBy(func(msgs []kafka.Message) bool {
			return len(msgs) == 1 && string(msgs[0].Key) == "3" && string(msgs[0].Value) == string(expected)
		})).Return(nil).Once()

		require.NoError(t, producer.Publish(ctx, record.Client, record))
		mockWriter.AssertExpectations(t)
	})

	t.Run("UnmarshalableValue", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &TransactionRecordProducer{logger: newTestLogger(), writer: mockWriter, topic: "transactions"}

		err := producer.Publish(ctx, "1", make(chan int))
		require.Error(t, err)
		mockWriter.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
	})

	t.Run("WriterError", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &TransactionRecordProducer{logger: newTestLogger(), writer: mockWriter, topic: "transactions"}
		writerError := errors.New("kafka write error")
		mockWriter.On("WriteMessages", ctx, mock.AnythingOfType("[]kafka.Message")).Return(writerError).Once()

		err := producer.Publish(ctx, "1", shared.TransactionRecord{Type: "dispute", Client: "1", Tx: "1"})
		assert.ErrorIs(t, err, writerError)
		mockWriter.AssertExpectations(t)
	})
}

func TestTransactionRecordProducer_Close(t *testing.T) {
	mockWriter := new(MockKafkaWriter)
	producer := &TransactionRecordProducer{logger: newTestLogger(), writer: mockWriter, topic: "transactions"}
	closeError := errors.New("kafka close error")
	mockWriter.On("Close").Return(nil).Once()
	mockWriter.On("Close").Return(closeError).Once()

	require.NoError(t, producer.Close())
	assert.ErrorIs(t, producer.Close(), closeError)
	mockWriter.AssertExpectations(t)
}
