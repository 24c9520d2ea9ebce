// Package postgres provides PostgreSQL implementations of the domain repositories.
// Account snapshots are written once per processing run and read back by the API.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/payments-ledger/internal/domain/account"
	"github.com/payments-ledger/internal/domain/shared"
	"github.com/payments-ledger/internal/platform/persistence"
	"github.com/shopspring/decimal"
)

// AccountRepository implements the account.Repository interface for PostgreSQL
type AccountRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewAccountRepository creates a new PostgreSQL account snapshot repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewAccountRepository(logger *slog.Logger, db *persistence.PostgresDB) account.Repository {
	return &AccountRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx returns a repository bound to tx, so several saves commit together.
func (r *AccountRepository) WithTx(tx pgx.Tx) account.Repository {
	return &AccountRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Save upserts the snapshot for its client
func (r *AccountRepository) Save(ctx context.Context, snap *account.Snapshot) error {
	query := `
		INSERT INTO account_snapshots (client_id, available, held, total, locked, run_id, exported_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (client_id) DO UPDATE
		SET available = EXCLUDED.available, held = EXCLUDED.held, total = EXCLUDED.total,
			locked = EXCLUDED.locked, run_id = EXCLUDED.run_id, exported_at = EXCLUDED.exported_at
	`

	_, err := r.querier.Exec(ctx, query,
		int32(snap.Client),
		shared.FormatValue(snap.Available),
		shared.FormatValue(snap.Held),
		shared.FormatValue(snap.Total),
		snap.Locked,
		snap.RunID,
		snap.ExportedAt,
	)
	if err != nil {
		r.logger.Error("Failed to save account snapshot", "client", snap.Client, "error", err)
		return fmt.Errorf("failed to save account snapshot: %w", err)
	}

	return nil
}

// GetByClient retrieves the latest snapshot for a client
func (r *AccountRepository) GetByClient(ctx context.Context, client shared.ClientID) (*account.Snapshot, error) {
	query := `
		SELECT client_id, available::text, held::text, total::text, locked, run_id, exported_at
		FROM account_snapshots
		WHERE client_id = $1
	`

	snap, err := scanSnapshot(r.querier.QueryRow(ctx, query, int32(client)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound{Client: client}
		}
		r.logger.Error("Failed to get account snapshot", "client", client, "error", err)
		return nil, fmt.Errorf("failed to get account snapshot: %w", err)
	}

	return snap, nil
}

// List retrieves snapshots ordered by client id
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*account.Snapshot, error) {
	query := `
		SELECT client_id, available::text, held::text, total::text, locked, run_id, exported_at
		FROM account_snapshots
		ORDER BY client_id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.querier.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list account snapshots", "error", err)
		return nil, fmt.Errorf("failed to list account snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*account.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			r.logger.Error("Failed to scan account snapshot", "error", err)
			return nil, fmt.Errorf("failed to scan account snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating account snapshots", "error", err)
		return nil, fmt.Errorf("error iterating account snapshots: %w", err)
	}

	return snapshots, nil
}

// Count returns the number of stored snapshots
func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.querier.QueryRow(ctx, `SELECT COUNT(*) FROM account_snapshots`).Scan(&count); err != nil {
		r.logger.Error("Failed to count account snapshots", "error", err)
		return 0, fmt.Errorf("failed to count account snapshots: %w", err)
	}
	return count, nil
}

func scanSnapshot(row pgx.Row) (*account.Snapshot, error) {
	var (
		snap                   account.Snapshot
		clientID               int32
		available, held, total string
	)
	if err := row.Scan(&clientID, &available, &held, &total, &snap.Locked, &snap.RunID, &snap.ExportedAt); err != nil {
		return nil, err
	}

	var err error
	snap.Client = shared.ClientID(clientID)
	if snap.Available, err = decimal.NewFromString(available); err != nil {
		return nil, fmt.Errorf("invalid available balance %q: %w", available, err)
	}
	if snap.Held, err = decimal.NewFromString(held); err != nil {
		return nil, fmt.Errorf("invalid held balance %q: %w", held, err)
	}
	if snap.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("invalid total balance %q: %w", total, err)
	}
	return &snap, nil
}
