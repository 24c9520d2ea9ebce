package service

import (
	"context"
	"log/slog"

	"github.com/payments-ledger/internal/api_gateway/middleware"
	"github.com/payments-ledger/internal/domain/shared"
	"github.com/payments-ledger/internal/platform/messaging/producers"
)

// TransactionServiceImpl implements the TransactionService interface
type TransactionServiceImpl struct {
	producer producers.MessagePublisher
	logger   *slog.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(logger *slog.Logger, producer producers.MessagePublisher) TransactionService {
	return &TransactionServiceImpl{
		producer: producer,
		logger:   logger,
	}
}

// SubmitTransaction validates record and publishes its normalized form. The
// client id is the message key, so one client's transactions stay ordered.
func (s *TransactionServiceImpl) SubmitTransaction(ctx context.Context, record shared.TransactionRecord) (shared.Transaction, error) {
	logger := s.logger.With("correlation_id", middleware.CorrelationIDFromContext(ctx))

	tx, err := record.ToTransaction()
	if err != nil {
		logger.Warn("Rejected transaction record", "type", record.Type, "client", record.Client, "tx", record.Tx, "error", err)
		return nil, err
	}

	normalized := shared.RecordFrom(tx)
	if err := s.producer.Publish(ctx, normalized.Client, normalized); err != nil {
		logger.Error("Failed to publish transaction record",
			"type", tx.Type(),
			"client", tx.ClientID(),
			"tx", tx.TransactionID(),
			"error", err,
		)
		return nil, err
	}

	logger.Info("Transaction record published",
		"type", tx.Type(),
		"client", tx.ClientID(),
		"tx", tx.TransactionID(),
	)
	return tx, nil
}
