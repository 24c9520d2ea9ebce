package shared

import (
	"fmt"
	"strings"
)

// TransactionRecord is one raw input row, as read from CSV or a Kafka message.
// Fields stay textual until ToTransaction validates them.
type TransactionRecord struct {
	Type   string `json:"type"`
	Client string `json:"client"`
	Tx     string `json:"tx"`
	Amount string `json:"amount,omitempty"`
}

// ToTransaction validates the record and builds the matching Transaction variant.
// Every failure wraps ErrInvalidRecord so readers can skip the row.
func (r TransactionRecord) ToTransaction() (Transaction, error) {
	txType, err := ParseTransactionType(r.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	client, err := ParseClientID(r.Client)
	if err != nil {
		return nil, err
	}
	txID, err := ParseTransactionID(r.Tx)
	if err != nil {
		return nil, err
	}

	if !txType.CarriesAmount() {
		switch txType {
		case TransactionTypeDispute:
			return Dispute{Client: client, Tx: txID}, nil
		case TransactionTypeResolve:
			return Resolve{Client: client, Tx: txID}, nil
		default:
			return Chargeback{Client: client, Tx: txID}, nil
		}
	}

	if strings.TrimSpace(r.Amount) == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, ErrMissingAmount)
	}
	amount, err := ParseAmount(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	if txType == TransactionTypeDeposit {
		return Deposit{Client: client, Tx: txID, Amount: amount}, nil
	}
	return Withdrawal{Client: client, Tx: txID, Amount: amount}, nil
}

// RecordFrom converts a Transaction back into its textual record form
func RecordFrom(tx Transaction) TransactionRecord {
	record := TransactionRecord{
		Type:   string(tx.Type()),
		Client: tx.ClientID().String(),
		Tx:     tx.TransactionID().String(),
	}
	if amount, ok := AmountOf(tx); ok {
		record.Amount = amount.String()
	}
	return record
}
