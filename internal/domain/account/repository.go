package account

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/payments-ledger/internal/domain/shared"
)

// Repository persists account snapshots. Saving a snapshot for a client
// that already has one replaces it.
type Repository interface {
	Save(ctx context.Context, snapshot *Snapshot) error
	GetByClient(ctx context.Context, client shared.ClientID) (*Snapshot, error)
	List(ctx context.Context, limit, offset int) ([]*Snapshot, error)
	Count(ctx context.Context) (int64, error)
	WithTx(tx pgx.Tx) Repository
}

// ErrAccountNotFound indicates missing account
type ErrAccountNotFound struct {
	Client shared.ClientID
}

func (e ErrAccountNotFound) Error() string {
	return "account not found: " + e.Client.String()
}

// Is matches any ErrAccountNotFound when the target client is zero
func (e ErrAccountNotFound) Is(target error) bool {
	t, ok := target.(ErrAccountNotFound)
	if !ok {
		return false
	}
	if t.Client == 0 {
		return true
	}
	return e.Client == t.Client
}
