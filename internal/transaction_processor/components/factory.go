package components

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/payments-ledger/internal/config"
	"github.com/payments-ledger/internal/domain/ledger"
	"github.com/payments-ledger/internal/transaction_processor/service"
)

// CreateProcessingService builds the processing service selected by PROCESSING_MODE.
func CreateProcessingService(
	cfg *config.Config,
	recorder service.OutcomeRecorder,
	logger *slog.Logger,
) service.ProcessingService {
	baseService := service.NewProcessingService(recorder, logger.With("component", "ledger"))

	if cfg.Processing.Mode != config.ProcessingModePartitioned {
		logger.Info("Created sequential processing service")
		return baseService
	}

	workerPoolService, err := service.NewWorkerPoolProcessingService(
		service.WorkerPoolConfig{
			Size:      cfg.WorkerPool.Size,
			QueueSize: cfg.WorkerPool.QueueSize,
		},
		recorder,
		logger.With("component", "worker_pool"),
	)
	if err != nil {
		logger.Error("Failed to create worker pool service, falling back to base service", "error", err)
		return baseService
	}

	logger.Info("Created partitioned processing service", "partitions", workerPoolService.Partitions())
	return workerPoolService
}

// CreateOutcomeRecorder returns a batching recorder when an outcome repository
// is available and auditing is switched on.
func CreateOutcomeRecorder(
	cfg *config.Config,
	outcomeRepo ledger.OutcomeRepository,
	runID uuid.UUID,
	logger *slog.Logger,
) service.OutcomeRecorder {
	if outcomeRepo == nil || !cfg.Processing.RecordOutcome {
		return LoggingOutcomeRecorder{}
	}
	return NewOutcomeRecorder(outcomeRepo, runID, cfg.Processing.OutcomeBatchSize, logger.With("component", "outcome_recorder"))
}
