package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/payments-ledger/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Snapshot is the exported final state of one account after a processing run
type Snapshot struct {
	Client     shared.ClientID `json:"client"`
	Available  decimal.Decimal `json:"available"`
	Held       decimal.Decimal `json:"held"`
	Total      decimal.Decimal `json:"total"`
	Locked     bool            `json:"locked"`
	RunID      uuid.UUID       `json:"run_id"`
	ExportedAt time.Time       `json:"exported_at"`
}

// NewSnapshot captures the current state of acc for the given run
func NewSnapshot(acc *Account, runID uuid.UUID, exportedAt time.Time) *Snapshot {
	return &Snapshot{
		Client:     acc.Client,
		Available:  acc.Available,
		Held:       acc.Held,
		Total:      acc.Total(),
		Locked:     acc.Locked,
		RunID:      runID,
		ExportedAt: exportedAt,
	}
}
