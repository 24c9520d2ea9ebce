package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/payments-ledger/internal/domain/shared"
	"github.com/payments-ledger/internal/platform/messaging/producers"
	"github.com/payments-ledger/internal/transaction_processor/service"
)

// TransactionEventHandler handles incoming transaction record messages from Kafka
type TransactionEventHandler struct {
	processingService service.ProcessingService
	validator         service.TransactionValidator
	producer          producers.DeadLetterPublisher
	logger            *slog.Logger
}

// NewTransactionEventHandler creates a new handler. producer may be nil when no
// dead-letter topic is configured.
func NewTransactionEventHandler(
	logger *slog.Logger,
	processingService service.ProcessingService,
	validator service.TransactionValidator,
	producer producers.DeadLetterPublisher,
) *TransactionEventHandler {
	return &TransactionEventHandler{
		processingService: processingService,
		validator:         validator,
		producer:          producer,
		logger:            logger,
	}
}

// HandleMessage decodes, validates and applies one message. Unusable messages
// are dead-lettered and acknowledged; only processing failures are returned.
func (h *TransactionEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var record shared.TransactionRecord
	if err := json.Unmarshal(value, &record); err != nil {
		h.reject(ctx, key, value, "Failed to unmarshal transaction record from Kafka message", err)
		return nil
	}

	tx, err := h.validator.Validate(ctx, &record)
	if err != nil {
		h.reject(ctx, key, value, "Invalid transaction record", err)
		return nil
	}

	logger := h.logger.With("tx", tx.TransactionID(), "client", tx.ClientID())
	logger.Debug("Received transaction for processing", "type", tx.Type())

	if err := h.processingService.ProcessTransaction(ctx, tx); err != nil {
		logger.Error("Failed to process transaction", "error", err)
		return fmt.Errorf("processing transaction %s failed: %w", tx.TransactionID(), err)
	}

	return nil
}

func (h *TransactionEventHandler) reject(ctx context.Context, key, value []byte, msg string, cause error) {
	h.logger.Warn(msg, "error", cause, "message_key", string(key))

	if h.producer == nil {
		return
	}
	reason := fmt.Sprintf("%s: %s", msg, cause.Error())
	if err := h.producer.PublishToDLQ(ctx, string(key), value, reason); err != nil {
		h.logger.Error("Failed to publish message to DLQ",
			"dlq_error", err,
			"original_error", cause,
			"message_key", string(key),
		)
		return
	}
	h.logger.Info("Published unprocessable message to DLQ", "message_key", string(key), "reason", reason)
}
