package service

import (
	"context"
	"fmt"

	"github.com/payments-ledger/internal/domain/account"
	"github.com/payments-ledger/internal/domain/shared"
)

// AccountServiceImpl implements the AccountService interface
type AccountServiceImpl struct {
	accountRepo account.Repository
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo account.Repository) AccountService {
	return &AccountServiceImpl{
		accountRepo: accountRepo,
	}
}

// ListAccounts returns one page of snapshots and the number of exported accounts
func (s *AccountServiceImpl) ListAccounts(ctx context.Context, limit, offset int) ([]*account.Snapshot, int64, error) {
	snapshots, err := s.accountRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.accountRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	return snapshots, total, nil
}

// GetAccount retrieves the snapshot of client, returns ErrAccountNotFound if not found
func (s *AccountServiceImpl) GetAccount(ctx context.Context, client shared.ClientID) (*account.Snapshot, error) {
	return s.accountRepo.GetByClient(ctx, client)
}
