package components

import (
	"context"
	"log/slog"

	"github.com/payments-ledger/internal/domain/shared"
	"github.com/payments-ledger/internal/transaction_processor/service"
)

type TransactionValidatorImpl struct {
	logger *slog.Logger
}

func NewTransactionValidator(logger *slog.Logger) service.TransactionValidator {
	return &TransactionValidatorImpl{
		logger: logger,
	}
}

// Validate checks the raw record and builds the typed transaction.
// Rejected records are logged and never reach the ledger.
func (v *TransactionValidatorImpl) Validate(ctx context.Context, record *shared.TransactionRecord) (shared.Transaction, error) {
	tx, err := record.ToTransaction()
	if err != nil {
		v.logger.Warn("Rejected transaction record",
			"type", record.Type,
			"client", record.Client,
			"tx", record.Tx,
			"amount", record.Amount,
			"error", err,
		)
		return nil, err
	}
	return tx, nil
}
