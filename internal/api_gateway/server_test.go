package api_gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/payments-ledger/internal/api_gateway/middleware"
	"github.com/payments-ledger/internal/api_gateway/service"
	"github.com/payments-ledger/internal/config"
	"github.com/payments-ledger/internal/domain/account"
	"github.com/payments-ledger/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAccountService struct{}

func (stubAccountService) ListAccounts(context.Context, int, int) ([]*account.Snapshot, int64, error) {
	return []*account.Snapshot{}, 0, nil
}

func (stubAccountService) GetAccount(_ context.Context, client shared.ClientID) (*account.Snapshot, error) {
	return nil, account.ErrAccountNotFound{Client: client}
}

type stubTransactionService struct {
	records []shared.TransactionRecord
}

func (s *stubTransactionService) SubmitTransaction(_ context.Context, record shared.TransactionRecord) (shared.Transaction, error) {
	s.records = append(s.records, record)
	return record.ToTransaction()
}

func newTestServer(t *testing.T, outcomes service.OutcomeService, transactions service.TransactionService) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Application: config.ApplicationConfig{Env: "test"},
		Server: config.ServerConfig{
			Port:         8080,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			IdleTimeout:  time.Second,
		},
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewServer(logger, cfg, stubAccountService{}, outcomes, transactions)
}

func TestServer_Routes(t *testing.T) {
	transactions := &stubTransactionService{}
	server := newTestServer(t, service.NewOutcomeService(nil), transactions)

	testCases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"Health", http.MethodGet, "/health", "", http.StatusOK},
		{"ListAccounts", http.MethodGet, "/api/v1/accounts", "", http.StatusOK},
		{"UnknownAccount", http.MethodGet, "/api/v1/accounts/3", "", http.StatusNotFound},
		{"OutcomesWithoutAudit", http.MethodGet, "/api/v1/accounts/3/outcomes", "", http.StatusServiceUnavailable},
		{"SubmitTransaction", http.MethodPost, "/api/v1/transactions", `{"type":"deposit","client":"3","tx":"1","amount":"2"}`, http.StatusAccepted},
		{"SubmitInvalidTransaction", http.MethodPost, "/api/v1/transactions", `{"type":"deposit","client":"3","tx":"1"}`, http.StatusBadRequest},
		{"UnknownRoute", http.MethodGet, "/api/v1/ledger", "", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			server.Handler().ServeHTTP(rr, req)

			assert.Equal(t, tc.status, rr.Code)
			assert.NotEmpty(t, rr.Header().Get(middleware.CorrelationIDHeader))
		})
	}

	require.Len(t, transactions.records, 2)
	assert.Equal(t, "3", transactions.records[0].Client)
}

func TestServer_EchoesCorrelationID(t *testing.T) {
	server := newTestServer(t, service.NewOutcomeService(nil), &stubTransactionService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/7", nil)
	req.Header.Set(middleware.CorrelationIDHeader, "req-42")
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "req-42", rr.Header().Get(middleware.CorrelationIDHeader))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "req-42", body["correlation_id"])
}

func TestServer_StopBeforeStart(t *testing.T) {
	server := newTestServer(t, service.NewOutcomeService(nil), &stubTransactionService{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, server.Stop(ctx))
}
