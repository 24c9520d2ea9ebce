package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/payments-ledger/internal/domain/account"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(client uint16) *account.Snapshot {
	return &account.Snapshot{
		Client:     shared16(client),
		Available:  decimal.NewFromInt(int64(client)),
		Held:       decimal.Zero,
		Total:      decimal.NewFromInt(int64(client)),
		RunID:      uuid.New(),
		ExportedAt: time.Now(),
	}
}

func TestAccountService_ListAccounts(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockAccountRepository)
		snapshots := []*account.Snapshot{testSnapshot(1), testSnapshot(2)}
		repo.On("List", ctx, 2, 0).Return(snapshots, nil).Once()
		repo.On("Count", ctx).Return(int64(5), nil).Once()

		result, total, err := NewAccountService(repo).ListAccounts(ctx, 2, 0)

		require.NoError(t, err)
		assert.Equal(t, snapshots, result)
		assert.Equal(t, int64(5), total)
		repo.AssertExpectations(t)
	})

	t.Run("ListError", func(t *testing.T) {
		repo := new(MockAccountRepository)
		repo.On("List", ctx, 10, 0).Return(nil, errors.New("db down")).Once()

		_, _, err := NewAccountService(repo).ListAccounts(ctx, 10, 0)

		assert.EqualError(t, err, "db down")
		repo.AssertNotCalled(t, "Count", ctx)
	})

	t.Run("CountError", func(t *testing.T) {
		repo := new(MockAccountRepository)
		repo.On("List", ctx, 10, 0).Return([]*account.Snapshot{}, nil).Once()
		repo.On("Count", ctx).Return(int64(0), errors.New("timeout")).Once()

		_, _, err := NewAccountService(repo).ListAccounts(ctx, 10, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to count accounts")
	})
}

func TestAccountService_GetAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		repo := new(MockAccountRepository)
		snapshot := testSnapshot(7)
		repo.On("GetByClient", ctx, shared16(7)).Return(snapshot, nil).Once()

		result, err := NewAccountService(repo).GetAccount(ctx, 7)

		require.NoError(t, err)
		assert.Equal(t, snapshot, result)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockAccountRepository)
		repo.On("GetByClient", ctx, shared16(8)).Return(nil, account.ErrAccountNotFound{Client: 8}).Once()

		result, err := NewAccountService(repo).GetAccount(ctx, 8)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, account.ErrAccountNotFound{})
	})
}
