package account

import (
	"errors"

	"github.com/payments-ledger/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrAccountLocked     = errors.New("account is locked")
	ErrInsufficientFunds = errors.New("insufficient available funds")
	ErrInsufficientHeld  = errors.New("insufficient held funds")
	ErrBalanceOverflow   = errors.New("balance would exceed the maximum representable value")
)

// Account is the balance state of one client.
// Available and Held are never negative; once Locked the account never changes again.
type Account struct {
	Client    shared.ClientID `json:"client"`
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Locked    bool            `json:"locked"`
}

// NewAccount creates an empty, unlocked account
func NewAccount(client shared.ClientID) *Account {
	return &Account{
		Client:    client,
		Available: decimal.Zero,
		Held:      decimal.Zero,
	}
}

// Total returns available + held, saturating at the maximum representable value
func (a *Account) Total() decimal.Decimal {
	return shared.SaturatingAdd(a.Available, a.Held)
}

// Deposit adds amount to the available balance
func (a *Account) Deposit(amount shared.Amount) error {
	if a.Locked {
		return ErrAccountLocked
	}
	available, ok := shared.CheckedAdd(a.Available, amount.Decimal())
	if !ok {
		return ErrBalanceOverflow
	}
	a.Available = available
	return nil
}

// Withdraw subtracts amount from the available balance
func (a *Account) Withdraw(amount shared.Amount) error {
	if a.Locked {
		return ErrAccountLocked
	}
	available, ok := shared.CheckedSub(a.Available, amount.Decimal())
	if !ok {
		return ErrInsufficientFunds
	}
	a.Available = available
	return nil
}

// Hold moves amount from available to held. Both fields change or neither does.
func (a *Account) Hold(amount shared.Amount) error {
	if a.Locked {
		return ErrAccountLocked
	}
	available, ok := shared.CheckedSub(a.Available, amount.Decimal())
	if !ok {
		return ErrInsufficientFunds
	}
	held, ok := shared.CheckedAdd(a.Held, amount.Decimal())
	if !ok {
		return ErrBalanceOverflow
	}
	a.Available, a.Held = available, held
	return nil
}

// Release moves amount from held back to available. Both fields change or neither does.
func (a *Account) Release(amount shared.Amount) error {
	if a.Locked {
		return ErrAccountLocked
	}
	held, ok := shared.CheckedSub(a.Held, amount.Decimal())
	if !ok {
		return ErrInsufficientHeld
	}
	available, ok := shared.CheckedAdd(a.Available, amount.Decimal())
	if !ok {
		return ErrBalanceOverflow
	}
	a.Available, a.Held = available, held
	return nil
}

// Chargeback removes amount from held and freezes the account permanently
func (a *Account) Chargeback(amount shared.Amount) error {
	if a.Locked {
		return ErrAccountLocked
	}
	held, ok := shared.CheckedSub(a.Held, amount.Decimal())
	if !ok {
		return ErrInsufficientHeld
	}
	a.Held = held
	a.Locked = true
	return nil
}
