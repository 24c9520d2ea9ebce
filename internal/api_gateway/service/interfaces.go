package service

import (
	"context"
	"errors"

	"github.com/payments-ledger/internal/domain/account"
	"github.com/payments-ledger/internal/domain/ledger"
	"github.com/payments-ledger/internal/domain/shared"
)

// ErrOutcomesUnavailable is returned when no outcome store is configured
var ErrOutcomesUnavailable = errors.New("outcome audit store is not configured")

// AccountService serves the most recently exported account snapshots
type AccountService interface {
	// ListAccounts returns a page of snapshots ordered by client and the total count
	ListAccounts(ctx context.Context, limit, offset int) ([]*account.Snapshot, int64, error)

	// GetAccount returns the snapshot of one client.
	// Returns ErrAccountNotFound if the client was never exported
	GetAccount(ctx context.Context, client shared.ClientID) (*account.Snapshot, error)
}

// OutcomeService serves the audited outcome of every processed transaction
type OutcomeService interface {
	// GetOutcomesByClient returns a page of outcomes, newest first, and the total count
	GetOutcomesByClient(ctx context.Context, client shared.ClientID, limit, offset int) ([]*ledger.OutcomeRecord, int64, error)
}

// TransactionService accepts transactions for asynchronous processing
type TransactionService interface {
	// SubmitTransaction validates record and publishes it keyed by client.
	// Invalid records are rejected with an error wrapping shared.ErrInvalidRecord
	SubmitTransaction(ctx context.Context, record shared.TransactionRecord) (shared.Transaction, error)
}
