package service

import (
	"context"

	"github.com/payments-ledger/internal/domain/ledger"
	"github.com/payments-ledger/internal/domain/shared"
)

// OutcomeServiceImpl implements the OutcomeService interface
type OutcomeServiceImpl struct {
	outcomeRepo ledger.OutcomeRepository
}

// NewOutcomeService creates a new outcome service. A nil repository makes every
// query fail with ErrOutcomesUnavailable.
func NewOutcomeService(outcomeRepo ledger.OutcomeRepository) OutcomeService {
	return &OutcomeServiceImpl{
		outcomeRepo: outcomeRepo,
	}
}

// GetOutcomesByClient returns one page of outcomes and the total for client
func (s *OutcomeServiceImpl) GetOutcomesByClient(ctx context.Context, client shared.ClientID, limit, offset int) ([]*ledger.OutcomeRecord, int64, error) {
	if s.outcomeRepo == nil {
		return nil, 0, ErrOutcomesUnavailable
	}

	records, err := s.outcomeRepo.GetByClient(ctx, client, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.outcomeRepo.CountByClient(ctx, client)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
