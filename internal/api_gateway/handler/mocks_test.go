package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/payments-ledger/internal/domain/account"
	"github.com/payments-ledger/internal/domain/ledger"
	"github.com/payments-ledger/internal/domain/shared"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) ListAccounts(ctx context.Context, limit, offset int) ([]*account.Snapshot, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*account.Snapshot), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountService) GetAccount(ctx context.Context, client shared.ClientID) (*account.Snapshot, error) {
	args := m.Called(ctx, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Snapshot), args.Error(1)
}

type MockOutcomeService struct {
	mock.Mock
}

func (m *MockOutcomeService) GetOutcomesByClient(ctx context.Context, client shared.ClientID, limit, offset int) ([]*ledger.OutcomeRecord, int64, error) {
	args := m.Called(ctx, client, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*ledger.OutcomeRecord), args.Get(1).(int64), args.Error(2)
}

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) SubmitTransaction(ctx context.Context, record shared.TransactionRecord) (shared.Transaction, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(shared.Transaction), args.Error(1)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// decodeData unmarshals the response envelope and its data field into out
func decodeData(t *testing.T, body []byte, out interface{}) Response {
	t.Helper()
	var envelope Response
	require.NoError(t, json.Unmarshal(body, &envelope))
	if out != nil {
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out))
	}
	return envelope
}
