// Package pipeline drives one processing run: it feeds transactions into the
// processing service, then snapshots the ledger and hands the result to the
// configured sinks.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/payments-ledger/internal/domain/shared"
	"github.com/payments-ledger/internal/platform/csvio"
	"github.com/payments-ledger/internal/platform/messaging/producers"
	"github.com/payments-ledger/internal/transaction_processor/engine"
	"github.com/payments-ledger/internal/transaction_processor/service"
)

// Summary describes a finished run
type Summary struct {
	service.Stats
	Rejected int64
	Accounts int
}

// Pipeline owns the processing service for a single run
type Pipeline struct {
	processing service.ProcessingService
	recorder   service.OutcomeRecorder
	exporter   service.SnapshotExporter
	dlq        producers.DeadLetterPublisher
	logger     *slog.Logger
	rejected   atomic.Int64
}

// New creates a pipeline. exporter and dlq are optional.
func New(
	processing service.ProcessingService,
	recorder service.OutcomeRecorder,
	exporter service.SnapshotExporter,
	dlq producers.DeadLetterPublisher,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		processing: processing,
		recorder:   recorder,
		exporter:   exporter,
		dlq:        dlq,
		logger:     logger,
	}
}

// ProcessCSV streams every row of r into the ledger. Rejected rows are logged
// and dead-lettered; only reader and processing failures are returned.
func (p *Pipeline) ProcessCSV(ctx context.Context, r io.Reader) error {
	handle := func(tx shared.Transaction) error {
		return p.processing.ProcessTransaction(ctx, tx)
	}
	reject := func(line int, record shared.TransactionRecord, err error) {
		p.Reject(ctx, line, record, err)
	}
	if err := csvio.ReadTransactions(ctx, r, handle, reject); err != nil {
		return fmt.Errorf("failed to process transactions: %w", err)
	}
	return nil
}

// Reject records an input row that never reached the ledger
func (p *Pipeline) Reject(ctx context.Context, line int, record shared.TransactionRecord, cause error) {
	p.rejected.Add(1)
	p.logger.Warn("Skipping invalid transaction record",
		"line", line,
		"type", record.Type,
		"client", record.Client,
		"tx", record.Tx,
		"error", cause,
	)

	if p.dlq == nil {
		return
	}
	value, err := json.Marshal(record)
	if err != nil {
		p.logger.Error("Failed to encode rejected record", "line", line, "error", err)
		return
	}
	reason := fmt.Sprintf("line %d: %s", line, cause.Error())
	if err := p.dlq.PublishToDLQ(ctx, record.Client, value, reason); err != nil {
		p.logger.Error("Failed to publish rejected record to DLQ", "line", line, "error", err)
	}
}

// Finish stops intake and returns the final account table
func (p *Pipeline) Finish(ctx context.Context) (*engine.AccountTable, error) {
	table, err := p.processing.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to take account snapshot: %w", err)
	}
	return table, nil
}

// Persist flushes buffered outcomes and exports the table when an exporter is
// configured. Both sinks are attempted even if one fails.
func (p *Pipeline) Persist(ctx context.Context, table *engine.AccountTable) error {
	var errs []error
	if err := p.recorder.Flush(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to flush outcomes: %w", err))
	}
	if p.exporter != nil {
		if err := p.exporter.Export(ctx, table); err != nil {
			errs = append(errs, fmt.Errorf("failed to export snapshot: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Summary reports counters for the run so far
func (p *Pipeline) Summary(table *engine.AccountTable) Summary {
	summary := Summary{
		Stats:    p.processing.Stats(),
		Rejected: p.rejected.Load(),
	}
	if table != nil {
		summary.Accounts = table.Len()
	}
	return summary
}

// LogSummary writes the run summary at info level
func (p *Pipeline) LogSummary(table *engine.AccountTable) {
	s := p.Summary(table)
	p.logger.Info("Processing run completed",
		"processed", s.Processed,
		"applied", s.Applied,
		"ignored", s.Ignored,
		"rejected", s.Rejected,
		"accounts", s.Accounts,
	)
}
