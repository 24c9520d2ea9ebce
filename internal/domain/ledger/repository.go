package ledger

import (
	"context"

	"github.com/payments-ledger/internal/domain/shared"
)

// OutcomeRepository manages the outcome audit trail with pagination support
type OutcomeRepository interface {
	InsertMany(ctx context.Context, records []*OutcomeRecord) error
	GetByClient(ctx context.Context, client shared.ClientID, limit, offset int) ([]*OutcomeRecord, error)
	CountByClient(ctx context.Context, client shared.ClientID) (int64, error)
}

// ErrEntryNotFound indicates a transaction id with no logged entry
type ErrEntryNotFound struct {
	TransactionID shared.TransactionID
}

func (e ErrEntryNotFound) Error() string {
	return "ledger entry not found: " + e.TransactionID.String()
}

// Is implements the errors.Is interface for ErrEntryNotFound
func (e ErrEntryNotFound) Is(target error) bool {
	t, ok := target.(ErrEntryNotFound)
	if !ok {
		return false
	}
	// A zero target matches any missing entry
	if t.TransactionID == 0 {
		return true
	}
	return e.TransactionID == t.TransactionID
}
