package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/payments-ledger/internal/domain/account"
	"github.com/payments-ledger/internal/domain/shared"
)

var reportHeader = []string{"client", "available", "held", "total", "locked"}

// WriteAccounts writes the header and one row per account, in the order given.
// Balances carry exactly four fractional digits.
func WriteAccounts(w io.Writer, accounts []*account.Account) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(reportHeader); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, acc := range accounts {
		row := []string{
			acc.Client.String(),
			shared.FormatValue(acc.Available),
			shared.FormatValue(acc.Held),
			shared.FormatValue(acc.Total()),
			strconv.FormatBool(acc.Locked),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write account %s: %w", acc.Client, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}
