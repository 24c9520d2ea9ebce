package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/payments-ledger/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func depositEntry(client shared.ClientID, amount string) Entry {
	return NewEntry(client, shared.TransactionTypeDeposit, shared.MustAmount(amount))
}

func TestTransactionLog_Record(t *testing.T) {
	log := NewTransactionLog()

	assert.True(t, log.Record(1, depositEntry(1, "5")))
	assert.False(t, log.Record(1, depositEntry(2, "9")), "duplicate id is rejected")
	assert.Equal(t, 1, log.Len())

	entry, ok := log.Get(1)
	require.True(t, ok)
	assert.Equal(t, shared.ClientID(1), entry.Client)
	assert.Equal(t, "5.0000", entry.Amount.String())
	assert.Equal(t, DisputeStateNone, entry.DisputeState)

	_, ok = log.Get(2)
	assert.False(t, ok)
	assert.True(t, log.Contains(1))
	assert.False(t, log.Contains(2))
}

func TestTransactionLog_DisputeLifecycle(t *testing.T) {
	log := NewTransactionLog()
	log.Record(10, depositEntry(1, "2"))

	require.NoError(t, log.MarkDisputed(10))
	entry, _ := log.Get(10)
	assert.Equal(t, DisputeStateDisputed, entry.DisputeState)

	err := log.MarkDisputed(10)
	assert.ErrorIs(t, err, ErrInvalidDisputeTransition, "cannot dispute twice")

	require.NoError(t, log.MarkResolved(10))
	entry, _ = log.Get(10)
	assert.Equal(t, DisputeStateNone, entry.DisputeState)

	assert.ErrorIs(t, log.MarkResolved(10), ErrInvalidDisputeTransition)
	assert.ErrorIs(t, log.MarkChargedBack(10), ErrInvalidDisputeTransition)

	require.NoError(t, log.MarkDisputed(10), "re-dispute after resolve")
	require.NoError(t, log.MarkChargedBack(10))
	entry, _ = log.Get(10)
	assert.Equal(t, DisputeStateChargedBack, entry.DisputeState)

	assert.ErrorIs(t, log.MarkDisputed(10), ErrInvalidDisputeTransition, "charged back is terminal")
	assert.ErrorIs(t, log.MarkResolved(10), ErrInvalidDisputeTransition)
	assert.Equal(t, 1, log.Len(), "entries are never removed")
}

func TestTransactionLog_WithdrawalNotDisputable(t *testing.T) {
	log := NewTransactionLog()
	log.Record(3, NewEntry(1, shared.TransactionTypeWithdrawal, shared.MustAmount("1")))

	assert.ErrorIs(t, log.MarkDisputed(3), ErrInvalidDisputeTransition)
	entry, _ := log.Get(3)
	assert.False(t, entry.Disputable())
}

func TestTransactionLog_MissingEntry(t *testing.T) {
	log := NewTransactionLog()

	err := log.MarkDisputed(42)
	assert.True(t, errors.Is(err, ErrEntryNotFound{}))
	assert.True(t, errors.Is(err, ErrEntryNotFound{TransactionID: 42}))
	assert.False(t, errors.Is(err, ErrEntryNotFound{TransactionID: 43}))
	assert.Equal(t, "ledger entry not found: 42", err.Error())
}

func TestDisputeState_String(t *testing.T) {
	assert.Equal(t, "none", DisputeStateNone.String())
	assert.Equal(t, "disputed", DisputeStateDisputed.String())
	assert.Equal(t, "charged_back", DisputeStateChargedBack.String())
	assert.Equal(t, "unknown", DisputeState(9).String())
}

func TestNewOutcomeRecord(t *testing.T) {
	runID := uuid.New()
	now := time.Now()

	record := NewOutcomeRecord(runID, shared.Applied(shared.Deposit{Client: 1, Tx: 2, Amount: shared.MustAmount("1.5")}), now)
	assert.Equal(t, &OutcomeRecord{
		RunID:       runID,
		Type:        shared.TransactionTypeDeposit,
		Client:      1,
		Tx:          2,
		Amount:      "1.5000",
		Applied:     true,
		ProcessedAt: now,
	}, record)

	record = NewOutcomeRecord(runID, shared.Ignored(shared.Dispute{Client: 3, Tx: 4}, shared.IgnoreReasonTransactionNotFound), now)
	assert.Empty(t, record.Amount)
	assert.False(t, record.Applied)
	assert.Equal(t, shared.IgnoreReasonTransactionNotFound, record.Reason)
}
