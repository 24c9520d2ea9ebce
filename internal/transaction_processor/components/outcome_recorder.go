package components

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/payments-ledger/internal/domain/ledger"
	"github.com/payments-ledger/internal/domain/shared"
	"github.com/payments-ledger/internal/transaction_processor/service"
)

// OutcomeRecorderImpl buffers outcome audit records and writes them to the
// outcome repository in batches
type OutcomeRecorderImpl struct {
	outcomeRepo ledger.OutcomeRepository
	runID       uuid.UUID
	batchSize   int
	now         func() time.Time
	logger      *slog.Logger

	mu     sync.Mutex
	buffer []*ledger.OutcomeRecord
}

func NewOutcomeRecorder(outcomeRepo ledger.OutcomeRepository, runID uuid.UUID, batchSize int, logger *slog.Logger) service.OutcomeRecorder {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &OutcomeRecorderImpl{
		outcomeRepo: outcomeRepo,
		runID:       runID,
		batchSize:   batchSize,
		now:         time.Now,
		logger:      logger,
		buffer:      make([]*ledger.OutcomeRecord, 0, batchSize),
	}
}

// Record queues the outcome and writes a batch once the buffer is full
func (r *OutcomeRecorderImpl) Record(ctx context.Context, outcome shared.Outcome) error {
	record := ledger.NewOutcomeRecord(r.runID, outcome, r.now())

	r.mu.Lock()
	r.buffer = append(r.buffer, record)
	if len(r.buffer) < r.batchSize {
		r.mu.Unlock()
		return nil
	}
	batch := r.takeLocked()
	r.mu.Unlock()

	return r.write(ctx, batch)
}

// Flush writes whatever is still buffered
func (r *OutcomeRecorderImpl) Flush(ctx context.Context) error {
	r.mu.Lock()
	batch := r.takeLocked()
	r.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}
	return r.write(ctx, batch)
}

func (r *OutcomeRecorderImpl) takeLocked() []*ledger.OutcomeRecord {
	batch := r.buffer
	r.buffer = make([]*ledger.OutcomeRecord, 0, r.batchSize)
	return batch
}

func (r *OutcomeRecorderImpl) write(ctx context.Context, batch []*ledger.OutcomeRecord) error {
	if err := r.outcomeRepo.InsertMany(ctx, batch); err != nil {
		r.logger.Error("Failed to write outcome batch", "run_id", r.runID.String(), "size", len(batch), "error", err)
		return fmt.Errorf("failed to record %d outcomes: %w", len(batch), err)
	}
	r.logger.Debug("Wrote outcome batch", "run_id", r.runID.String(), "size", len(batch))
	return nil
}

// LoggingOutcomeRecorder keeps no audit trail; ignored transactions are
// already logged by the processing service
type LoggingOutcomeRecorder struct{}

func (LoggingOutcomeRecorder) Record(context.Context, shared.Outcome) error { return nil }

func (LoggingOutcomeRecorder) Flush(context.Context) error { return nil }
