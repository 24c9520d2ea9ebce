package ledger

import (
	"errors"
	"fmt"

	"github.com/payments-ledger/internal/domain/shared"
)

var ErrInvalidDisputeTransition = errors.New("invalid dispute state transition")

// TransactionLog is the append-only history of accepted deposits and withdrawals.
// Entries are never removed; only their dispute state changes.
type TransactionLog struct {
	entries map[shared.TransactionID]Entry
}

// NewTransactionLog creates an empty log
func NewTransactionLog() *TransactionLog {
	return &TransactionLog{entries: make(map[shared.TransactionID]Entry)}
}

// Record inserts entry under id unless id is already present.
// It returns false for a duplicate and leaves the existing entry untouched.
func (l *TransactionLog) Record(id shared.TransactionID, entry Entry) bool {
	if _, exists := l.entries[id]; exists {
		return false
	}
	l.entries[id] = entry
	return true
}

// Get returns the entry logged under id
func (l *TransactionLog) Get(id shared.TransactionID) (Entry, bool) {
	entry, ok := l.entries[id]
	return entry, ok
}

// Contains reports whether id has already been accepted
func (l *TransactionLog) Contains(id shared.TransactionID) bool {
	_, ok := l.entries[id]
	return ok
}

// Len returns the number of logged transactions
func (l *TransactionLog) Len() int {
	return len(l.entries)
}

// MarkDisputed moves an undisputed deposit into the disputed state
func (l *TransactionLog) MarkDisputed(id shared.TransactionID) error {
	return l.transition(id, func(e Entry) bool { return e.Disputable() }, DisputeStateDisputed)
}

// MarkResolved clears the disputed state, making the entry disputable again
func (l *TransactionLog) MarkResolved(id shared.TransactionID) error {
	return l.transition(id, isDisputed, DisputeStateNone)
}

// MarkChargedBack closes a dispute for good
func (l *TransactionLog) MarkChargedBack(id shared.TransactionID) error {
	return l.transition(id, isDisputed, DisputeStateChargedBack)
}

func isDisputed(e Entry) bool {
	return e.DisputeState == DisputeStateDisputed
}

func (l *TransactionLog) transition(id shared.TransactionID, allowed func(Entry) bool, to DisputeState) error {
	entry, ok := l.entries[id]
	if !ok {
		return ErrEntryNotFound{TransactionID: id}
	}
	if !allowed(entry) {
		return fmt.Errorf("%w: tx %s %s -> %s", ErrInvalidDisputeTransition, id, entry.DisputeState, to)
	}
	entry.DisputeState = to
	l.entries[id] = entry
	return nil
}
