package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/payments-ledger/internal/domain/shared"
)

// OutcomeRecord is the audit trail entry for one processed transaction
type OutcomeRecord struct {
	RunID       uuid.UUID              `json:"run_id" bson:"run_id"`
	Type        shared.TransactionType `json:"type" bson:"type"`
	Client      shared.ClientID        `json:"client" bson:"client"`
	Tx          shared.TransactionID   `json:"tx" bson:"tx"`
	Amount      string                 `json:"amount,omitempty" bson:"amount,omitempty"`
	Applied     bool                   `json:"applied" bson:"applied"`
	Reason      shared.IgnoreReason    `json:"reason,omitempty" bson:"reason,omitempty"`
	ProcessedAt time.Time              `json:"processed_at" bson:"processed_at"`
}

// NewOutcomeRecord flattens a ledger outcome into its audit form
func NewOutcomeRecord(runID uuid.UUID, outcome shared.Outcome, processedAt time.Time) *OutcomeRecord {
	tx := outcome.Transaction
	record := &OutcomeRecord{
		RunID:       runID,
		Type:        tx.Type(),
		Client:      tx.ClientID(),
		Tx:          tx.TransactionID(),
		Applied:     outcome.Applied,
		Reason:      outcome.Reason,
		ProcessedAt: processedAt,
	}
	if amount, ok := shared.AmountOf(tx); ok {
		record.Amount = amount.String()
	}
	return record
}
