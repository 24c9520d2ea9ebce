package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/payments-ledger/internal/domain/account"
	"github.com/payments-ledger/internal/domain/ledger"
	"github.com/payments-ledger/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Save(ctx context.Context, snapshot *account.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByClient(ctx context.Context, client shared.ClientID) (*account.Snapshot, error) {
	args := m.Called(ctx, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Snapshot), args.Error(1)
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*account.Snapshot, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Snapshot), args.Error(1)
}

func (m *MockAccountRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) WithTx(tx pgx.Tx) account.Repository {
	args := m.Called(tx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(account.Repository)
}

type MockOutcomeRepository struct {
	mock.Mock
}

func (m *MockOutcomeRepository) InsertMany(ctx context.Context, records []*ledger.OutcomeRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockOutcomeRepository) GetByClient(ctx context.Context, client shared.ClientID, limit, offset int) ([]*ledger.OutcomeRecord, error) {
	args := m.Called(ctx, client, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.OutcomeRecord), args.Error(1)
}

func (m *MockOutcomeRepository) CountByClient(ctx context.Context, client shared.ClientID) (int64, error) {
	args := m.Called(ctx, client)
	return args.Get(0).(int64), args.Error(1)
}

type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) Publish(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
