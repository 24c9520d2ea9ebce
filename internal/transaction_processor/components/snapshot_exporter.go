package components

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/payments-ledger/internal/domain/account"
	"github.com/payments-ledger/internal/transaction_processor/engine"
	"github.com/payments-ledger/internal/transaction_processor/service"
)

// SnapshotExporterImpl writes the final account table to the snapshot
// repository in a single database transaction
type SnapshotExporterImpl struct {
	db          service.TxExecutor
	accountRepo account.Repository
	runID       uuid.UUID
	now         func() time.Time
	logger      *slog.Logger
}

// NewSnapshotExporter creates a new SnapshotExporterImpl
func NewSnapshotExporter(db service.TxExecutor, accountRepo account.Repository, runID uuid.UUID, logger *slog.Logger) service.SnapshotExporter {
	return &SnapshotExporterImpl{
		db:          db,
		accountRepo: accountRepo,
		runID:       runID,
		now:         time.Now,
		logger:      logger,
	}
}

// Export upserts one snapshot per account. Either every row is written or none is.
func (e *SnapshotExporterImpl) Export(ctx context.Context, table *engine.AccountTable) error {
	exportedAt := e.now().UTC()
	accounts := table.Accounts()

	err := e.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		accountRepoTx := e.accountRepo.WithTx(tx)
		for _, acc := range accounts {
			if err := accountRepoTx.Save(ctx, account.NewSnapshot(acc, e.runID, exportedAt)); err != nil {
				e.logger.Error("Failed to save account snapshot", "client", acc.Client, "error", err)
				return fmt.Errorf("failed to save snapshot for client %s: %w", acc.Client, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.logger.Info("Exported account snapshots", "run_id", e.runID.String(), "accounts", len(accounts))
	return nil
}
