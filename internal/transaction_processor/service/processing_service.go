package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/payments-ledger/internal/domain/shared"
	"github.com/payments-ledger/internal/transaction_processor/engine"
)

// ProcessingServiceImpl applies every transaction to a single ledger in arrival order
type ProcessingServiceImpl struct {
	ledger   *engine.Ledger
	recorder OutcomeRecorder
	logger   *slog.Logger

	mu       sync.Mutex
	closed   bool
	counters counters
}

func NewProcessingService(recorder OutcomeRecorder, logger *slog.Logger) *ProcessingServiceImpl {
	return &ProcessingServiceImpl{
		ledger:   engine.NewLedger(),
		recorder: recorder,
		logger:   logger,
	}
}

// ProcessTransaction applies tx and reports the outcome to the recorder.
// Ignored transactions are not errors; only a closed service or a cancelled
// context fails the call.
func (s *ProcessingServiceImpl) ProcessTransaction(ctx context.Context, tx shared.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrServiceClosed
	}
	outcome := s.ledger.Apply(tx)
	s.mu.Unlock()

	s.counters.observe(outcome)
	report(ctx, s.logger, s.recorder, outcome)
	return nil
}

// Snapshot closes the service and returns the account table
func (s *ProcessingServiceImpl) Snapshot(ctx context.Context) (*engine.AccountTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return s.ledger.Accounts(), nil
}

func (s *ProcessingServiceImpl) Stats() Stats {
	return s.counters.snapshot()
}

func (s *ProcessingServiceImpl) Shutdown() {}

// report logs an ignored outcome and forwards every outcome to the recorder.
// A failing recorder never affects ledger state.
func report(ctx context.Context, logger *slog.Logger, recorder OutcomeRecorder, outcome shared.Outcome) {
	tx := outcome.Transaction
	if !outcome.Applied {
		logger.Debug("Transaction ignored",
			"type", tx.Type(),
			"client", tx.ClientID(),
			"tx", tx.TransactionID(),
			"reason", outcome.Reason,
		)
	}
	if recorder == nil {
		return
	}
	if err := recorder.Record(ctx, outcome); err != nil {
		logger.Error("Failed to record transaction outcome",
			"tx", tx.TransactionID(),
			"error", err,
		)
	}
}
