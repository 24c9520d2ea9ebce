package components

import (
	"context"
	"log/slog"
	"testing"

	"github.com/payments-ledger/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionValidator_Validate(t *testing.T) {
	validator := NewTransactionValidator(slog.Default())
	ctx := context.Background()

	tests := []struct {
		name     string
		record   *shared.TransactionRecord
		expected shared.Transaction
		errIs    error
	}{
		{
			name:     "valid deposit",
			record:   &shared.TransactionRecord{Type: "deposit", Client: "1", Tx: "1", Amount: "2.5"},
			expected: shared.Deposit{Client: 1, Tx: 1, Amount: shared.MustAmount("2.5")},
		},
		{
			name:     "valid dispute without amount",
			record:   &shared.TransactionRecord{Type: "dispute", Client: "1", Tx: "1"},
			expected: shared.Dispute{Client: 1, Tx: 1},
		},
		{
			name:   "unknown type",
			record: &shared.TransactionRecord{Type: "refund", Client: "1", Tx: "1", Amount: "1"},
			errIs:  shared.ErrInvalidTransactionType,
		},
		{
			name:   "non-positive amount",
			record: &shared.TransactionRecord{Type: "withdrawal", Client: "1", Tx: "1", Amount: "0"},
			errIs:  shared.ErrNonPositiveAmount,
		},
		{
			name:   "bad client",
			record: &shared.TransactionRecord{Type: "deposit", Client: "x", Tx: "1", Amount: "1"},
			errIs:  shared.ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := validator.Validate(ctx, tt.record)
			if tt.errIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.errIs)
				assert.Nil(t, tx)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tx)
		})
	}
}
