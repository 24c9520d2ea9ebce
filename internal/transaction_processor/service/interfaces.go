package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/payments-ledger/internal/domain/shared"
	"github.com/payments-ledger/internal/transaction_processor/engine"
)

// ErrServiceClosed is returned by ProcessTransaction after Snapshot has been taken
var ErrServiceClosed = errors.New("processing service is closed")

// ProcessingService feeds transactions into the ledger and hands back the final table.
type ProcessingService interface {
	ProcessTransaction(ctx context.Context, tx shared.Transaction) error
	// Snapshot stops intake, waits for queued transactions and returns the account table
	Snapshot(ctx context.Context) (*engine.AccountTable, error)
	Stats() Stats
	Shutdown()
}

// TransactionValidator turns a raw record into a typed transaction
type TransactionValidator interface {
	Validate(ctx context.Context, record *shared.TransactionRecord) (shared.Transaction, error)
}

// OutcomeRecorder observes every ledger outcome. Implementations must be safe
// for concurrent use.
type OutcomeRecorder interface {
	Record(ctx context.Context, outcome shared.Outcome) error
	Flush(ctx context.Context) error
}

// SnapshotExporter persists the final account table
type SnapshotExporter interface {
	Export(ctx context.Context, table *engine.AccountTable) error
}

// TxExecutor runs fn inside a database transaction
type TxExecutor interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
