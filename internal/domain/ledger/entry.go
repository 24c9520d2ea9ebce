package ledger

import (
	"github.com/payments-ledger/internal/domain/shared"
)

// DisputeState tracks where a logged transaction is in the dispute lifecycle
type DisputeState uint8

const (
	DisputeStateNone DisputeState = iota
	DisputeStateDisputed
	// DisputeStateChargedBack is terminal
	DisputeStateChargedBack
)

func (s DisputeState) String() string {
	switch s {
	case DisputeStateNone:
		return "none"
	case DisputeStateDisputed:
		return "disputed"
	case DisputeStateChargedBack:
		return "charged_back"
	default:
		return "unknown"
	}
}

// Entry is the retained record of an accepted deposit or withdrawal
type Entry struct {
	Client       shared.ClientID
	Amount       shared.Amount
	Type         shared.TransactionType
	DisputeState DisputeState
}

// NewEntry builds a log entry for an accepted deposit or withdrawal
func NewEntry(client shared.ClientID, txType shared.TransactionType, amount shared.Amount) Entry {
	return Entry{
		Client:       client,
		Amount:       amount,
		Type:         txType,
		DisputeState: DisputeStateNone,
	}
}

// Disputable reports whether a dispute may be opened against this entry
func (e Entry) Disputable() bool {
	return e.Type == shared.TransactionTypeDeposit && e.DisputeState == DisputeStateNone
}
