// Package engine holds the transaction-application state machine. A Ledger owns
// its accounts and transaction log outright and applies transactions strictly in
// the order it receives them.
package engine

import (
	"errors"

	"github.com/payments-ledger/internal/domain/account"
	"github.com/payments-ledger/internal/domain/ledger"
	"github.com/payments-ledger/internal/domain/shared"
)

// Ledger applies transactions to accounts. It is not safe for concurrent use.
type Ledger struct {
	accounts map[shared.ClientID]*account.Account
	log      *ledger.TransactionLog
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{
		accounts: make(map[shared.ClientID]*account.Account),
		log:      ledger.NewTransactionLog(),
	}
}

// Apply runs one transaction through the state machine. Rule violations never
// fail: the transaction is ignored and the returned outcome says why.
func (l *Ledger) Apply(tx shared.Transaction) shared.Outcome {
	switch t := tx.(type) {
	case shared.Deposit:
		return l.deposit(t)
	case shared.Withdrawal:
		return l.withdraw(t)
	case shared.Dispute:
		return l.dispute(t)
	case shared.Resolve:
		return l.resolve(t)
	case shared.Chargeback:
		return l.chargeback(t)
	default:
		panic("engine: unknown transaction variant")
	}
}

// Accounts returns the read view over every account known so far
func (l *Ledger) Accounts() *AccountTable {
	return newAccountTable(l.accounts)
}

// Logged returns the number of accepted deposits and withdrawals
func (l *Ledger) Logged() int {
	return l.log.Len()
}

func (l *Ledger) accountFor(client shared.ClientID) *account.Account {
	acc, ok := l.accounts[client]
	if !ok {
		acc = account.NewAccount(client)
		l.accounts[client] = acc
	}
	return acc
}

func (l *Ledger) deposit(t shared.Deposit) shared.Outcome {
	acc := l.accountFor(t.Client)
	if l.log.Contains(t.Tx) {
		return shared.Ignored(t, shared.IgnoreReasonDuplicateTransaction)
	}
	if err := acc.Deposit(t.Amount); err != nil {
		return shared.Ignored(t, reasonFor(err))
	}
	l.log.Record(t.Tx, ledger.NewEntry(t.Client, shared.TransactionTypeDeposit, t.Amount))
	return shared.Applied(t)
}

func (l *Ledger) withdraw(t shared.Withdrawal) shared.Outcome {
	acc := l.accountFor(t.Client)
	if l.log.Contains(t.Tx) {
		return shared.Ignored(t, shared.IgnoreReasonDuplicateTransaction)
	}
	if err := acc.Withdraw(t.Amount); err != nil {
		return shared.Ignored(t, reasonFor(err))
	}
	l.log.Record(t.Tx, ledger.NewEntry(t.Client, shared.TransactionTypeWithdrawal, t.Amount))
	return shared.Applied(t)
}

func (l *Ledger) dispute(t shared.Dispute) shared.Outcome {
	entry, reason := l.lookup(t.Client, t.Tx)
	if reason != shared.IgnoreReasonNone {
		return shared.Ignored(t, reason)
	}
	if entry.Type != shared.TransactionTypeDeposit {
		return shared.Ignored(t, shared.IgnoreReasonNotDisputable)
	}
	if entry.DisputeState != ledger.DisputeStateNone {
		return shared.Ignored(t, shared.IgnoreReasonAlreadyDisputed)
	}
	acc, ok := l.accounts[t.Client]
	if !ok {
		return shared.Ignored(t, shared.IgnoreReasonTransactionNotFound)
	}
	if err := acc.Hold(entry.Amount); err != nil {
		return shared.Ignored(t, reasonFor(err))
	}
	if err := l.log.MarkDisputed(t.Tx); err != nil {
		panic(err)
	}
	return shared.Applied(t)
}

func (l *Ledger) resolve(t shared.Resolve) shared.Outcome {
	entry, acc, reason := l.disputed(t.Client, t.Tx)
	if reason != shared.IgnoreReasonNone {
		return shared.Ignored(t, reason)
	}
	if err := acc.Release(entry.Amount); err != nil {
		return shared.Ignored(t, reasonFor(err))
	}
	if err := l.log.MarkResolved(t.Tx); err != nil {
		panic(err)
	}
	return shared.Applied(t)
}

func (l *Ledger) chargeback(t shared.Chargeback) shared.Outcome {
	entry, acc, reason := l.disputed(t.Client, t.Tx)
	if reason != shared.IgnoreReasonNone {
		return shared.Ignored(t, reason)
	}
	if err := acc.Chargeback(entry.Amount); err != nil {
		return shared.Ignored(t, reasonFor(err))
	}
	if err := l.log.MarkChargedBack(t.Tx); err != nil {
		panic(err)
	}
	return shared.Applied(t)
}

// lookup finds the logged entry for tx and checks that client owns it
func (l *Ledger) lookup(client shared.ClientID, tx shared.TransactionID) (ledger.Entry, shared.IgnoreReason) {
	entry, ok := l.log.Get(tx)
	if !ok {
		return ledger.Entry{}, shared.IgnoreReasonTransactionNotFound
	}
	if entry.Client != client {
		return ledger.Entry{}, shared.IgnoreReasonClientMismatch
	}
	return entry, shared.IgnoreReasonNone
}

// disputed resolves the entry and account for a resolve or chargeback
func (l *Ledger) disputed(client shared.ClientID, tx shared.TransactionID) (ledger.Entry, *account.Account, shared.IgnoreReason) {
	entry, reason := l.lookup(client, tx)
	if reason != shared.IgnoreReasonNone {
		return ledger.Entry{}, nil, reason
	}
	if entry.DisputeState != ledger.DisputeStateDisputed {
		return ledger.Entry{}, nil, shared.IgnoreReasonNotDisputed
	}
	acc, ok := l.accounts[client]
	if !ok {
		return ledger.Entry{}, nil, shared.IgnoreReasonTransactionNotFound
	}
	return entry, acc, shared.IgnoreReasonNone
}

func reasonFor(err error) shared.IgnoreReason {
	switch {
	case errors.Is(err, account.ErrAccountLocked):
		return shared.IgnoreReasonAccountLocked
	case errors.Is(err, account.ErrInsufficientFunds), errors.Is(err, account.ErrInsufficientHeld):
		return shared.IgnoreReasonInsufficientFunds
	case errors.Is(err, account.ErrBalanceOverflow):
		return shared.IgnoreReasonBalanceOverflow
	default:
		return shared.IgnoreReason(err.Error())
	}
}
