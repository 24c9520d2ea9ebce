package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/payments-ledger/internal/domain/shared"
	"github.com/payments-ledger/internal/transaction_processor/engine"
)

const defaultQueueSize = 256

// WorkerPoolProcessingService partitions the stream by client. Each partition
// owns its own ledger and is drained in order by one long-running pool task,
// so per-client ordering holds while different clients proceed in parallel.
type WorkerPoolProcessingService struct {
	pool       *ants.Pool
	partitions []*partition
	recorder   OutcomeRecorder
	logger     *slog.Logger
	wg         sync.WaitGroup

	mu       sync.RWMutex
	closed   bool
	table    *engine.AccountTable
	counters counters
}

type partition struct {
	id     int
	ledger *engine.Ledger
	queue  chan shared.Transaction
}

type WorkerPoolConfig struct {
	Size      int
	QueueSize int
}

func NewWorkerPoolProcessingService(
	config WorkerPoolConfig,
	recorder OutcomeRecorder,
	logger *slog.Logger,
) (*WorkerPoolProcessingService, error) {
	if config.Size <= 0 {
		return nil, fmt.Errorf("worker pool size must be positive, got %d", config.Size)
	}
	queueSize := config.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	// One worker per partition; tasks never return until their queue closes
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	s := &WorkerPoolProcessingService{
		pool:       pool,
		partitions: make([]*partition, config.Size),
		recorder:   recorder,
		logger:     logger,
	}

	for i := range s.partitions {
		p := &partition{
			id:     i,
			ledger: engine.NewLedger(),
			queue:  make(chan shared.Transaction, queueSize),
		}
		s.partitions[i] = p

		s.wg.Add(1)
		if err := pool.Submit(func() { s.drain(p) }); err != nil {
			s.wg.Done()
			s.closeQueues()
			pool.Release()
			return nil, fmt.Errorf("failed to start partition %d: %w", i, err)
		}
	}

	return s, nil
}

func (s *WorkerPoolProcessingService) drain(p *partition) {
	defer s.wg.Done()
	ctx := context.Background()
	for tx := range p.queue {
		outcome := p.ledger.Apply(tx)
		s.counters.observe(outcome)
		report(ctx, s.logger, s.recorder, outcome)
	}
	s.logger.Debug("Partition drained", "partition", p.id, "logged", p.ledger.Logged())
}

// ProcessTransaction enqueues tx on its client's partition. It blocks while
// that partition's queue is full.
func (s *WorkerPoolProcessingService) ProcessTransaction(ctx context.Context, tx shared.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrServiceClosed
	}

	p := s.partitionFor(tx.ClientID())
	select {
	case p.queue <- tx:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *WorkerPoolProcessingService) partitionFor(client shared.ClientID) *partition {
	return s.partitions[int(client)%len(s.partitions)]
}

// Snapshot closes every partition, waits for the queues to drain and merges
// the per-partition tables. Later calls return the same table.
func (s *WorkerPoolProcessingService) Snapshot(ctx context.Context) (*engine.AccountTable, error) {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		s.closeQueues()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for partitions to drain: %w", ctx.Err())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table != nil {
		return s.table, nil
	}

	tables := make([]*engine.AccountTable, 0, len(s.partitions))
	for _, p := range s.partitions {
		tables = append(tables, p.ledger.Accounts())
	}
	table, err := engine.MergeTables(tables...)
	if err != nil {
		return nil, err
	}
	s.table = table
	return table, nil
}

func (s *WorkerPoolProcessingService) closeQueues() {
	for _, p := range s.partitions {
		if p != nil {
			close(p.queue)
		}
	}
}

func (s *WorkerPoolProcessingService) Stats() Stats {
	return s.counters.snapshot()
}

// Shutdown closes the partition queues if Snapshot has not, so every drain
// task returns, then releases the worker pool.
func (s *WorkerPoolProcessingService) Shutdown() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		s.closeQueues()
	}
	s.mu.Unlock()

	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

// Partitions returns the number of independent ledgers
func (s *WorkerPoolProcessingService) Partitions() int {
	return len(s.partitions)
}
