package shared

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidRecord          = errors.New("invalid transaction record")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrNonPositiveAmount      = errors.New("amount must be positive")
	ErrAmountOutOfRange       = errors.New("amount exceeds the maximum representable value")
	ErrMalformedAmount        = errors.New("amount must be a plain decimal number")
	ErrMissingAmount          = errors.New("amount is required for deposits and withdrawals")
)

// TransactionType defines the kinds of rows found in the input stream
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeDispute    TransactionType = "dispute"
	TransactionTypeResolve    TransactionType = "resolve"
	TransactionTypeChargeback TransactionType = "chargeback"
)

// ParseTransactionType accepts the lowercase type names, ignoring case and surrounding space
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToLower(strings.TrimSpace(s))); t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeDispute,
		TransactionTypeResolve, TransactionTypeChargeback:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTransactionType, s)
	}
}

// CarriesAmount reports whether rows of this type must have an amount
func (t TransactionType) CarriesAmount() bool {
	return t == TransactionTypeDeposit || t == TransactionTypeWithdrawal
}

// IgnoreReason explains why the ledger left its state untouched for a transaction
type IgnoreReason string

const (
	IgnoreReasonNone                 IgnoreReason = ""
	IgnoreReasonDuplicateTransaction IgnoreReason = "DUPLICATE_TRANSACTION"
	IgnoreReasonAccountLocked        IgnoreReason = "ACCOUNT_LOCKED"
	IgnoreReasonInsufficientFunds    IgnoreReason = "INSUFFICIENT_FUNDS"
	IgnoreReasonBalanceOverflow      IgnoreReason = "BALANCE_OVERFLOW"
	IgnoreReasonTransactionNotFound  IgnoreReason = "TRANSACTION_NOT_FOUND"
	IgnoreReasonClientMismatch       IgnoreReason = "CLIENT_MISMATCH"
	IgnoreReasonNotDisputable        IgnoreReason = "NOT_DISPUTABLE"
	IgnoreReasonAlreadyDisputed      IgnoreReason = "ALREADY_DISPUTED"
	IgnoreReasonNotDisputed          IgnoreReason = "NOT_DISPUTED"
)
