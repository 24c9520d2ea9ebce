// Package csvio reads transaction records from CSV and writes account reports.
package csvio

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/payments-ledger/internal/domain/shared"
)

// ErrMissingColumn is returned when the header lacks a required column
var ErrMissingColumn = errors.New("missing required column")

var requiredColumns = []string{"type", "client", "tx"}

// HandleFunc receives each valid transaction in input order. A non-nil error stops the read.
type HandleFunc func(tx shared.Transaction) error

// RejectFunc receives each row that could not be turned into a transaction
type RejectFunc func(line int, record shared.TransactionRecord, err error)

type columns struct {
	typ, client, tx, amount int
}

// ReadTransactions streams rows from r. The first row is the header
// "type,client,tx,amount"; column order is taken from it and the amount column
// may be absent or empty for dispute, resolve and chargeback rows. Bad rows go
// to reject and never stop the read. Only I/O failures, a bad header, a
// cancelled context or an error from handle are returned.
func ReadTransactions(ctx context.Context, r io.Reader, handle HandleFunc, reject RejectFunc) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	cols, err := parseHeader(header)
	if err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				if reject != nil {
					reject(parseErr.StartLine, shared.TransactionRecord{}, fmt.Errorf("%w: %w", shared.ErrInvalidRecord, err))
				}
				continue
			}
			return fmt.Errorf("failed to read transactions: %w", err)
		}

		line, _ := reader.FieldPos(0)
		record := cols.record(fields)
		tx, err := record.ToTransaction()
		if err != nil {
			if reject != nil {
				reject(line, record, err)
			}
			continue
		}
		if err := handle(tx); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

func parseHeader(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		index[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return columns{}, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}
	cols := columns{typ: index["type"], client: index["client"], tx: index["tx"], amount: -1}
	if i, ok := index["amount"]; ok {
		cols.amount = i
	}
	return cols, nil
}

func (c columns) record(fields []string) shared.TransactionRecord {
	return shared.TransactionRecord{
		Type:   field(fields, c.typ),
		Client: field(fields, c.client),
		Tx:     field(fields, c.tx),
		Amount: field(fields, c.amount),
	}
}

func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}
