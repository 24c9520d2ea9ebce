package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/payments-ledger/internal/api_gateway/service"
	"github.com/payments-ledger/internal/domain/account"
	"github.com/payments-ledger/internal/domain/shared"
)

// AccountHandler serves exported account snapshots
type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(logger *slog.Logger, accountService service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// List returns a page of snapshots ordered by client
func (h *AccountHandler) List(c *gin.Context) {
	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		h.logger.Warn("Invalid pagination parameters", "error", err)
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	snapshots, total, err := h.accountService.ListAccounts(c.Request.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		h.logger.Error("Failed to list accounts", "error", err)
		RespondInternalError(c)
		return
	}

	accounts := make([]AccountResponse, 0, len(snapshots))
	for _, snapshot := range snapshots {
		accounts = append(accounts, mapSnapshotToResponse(snapshot))
	}

	RespondWithPaginatedData(c, http.StatusOK, accounts, pagination.Limit, pagination.Offset, total)
}

// GetByClient returns one client's snapshot, 404 if it was never exported
func (h *AccountHandler) GetByClient(c *gin.Context) {
	client, ok := parseClientParam(c, h.logger)
	if !ok {
		return
	}

	snapshot, err := h.accountService.GetAccount(c.Request.Context(), client)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound{}) {
			RespondNotFound(c, "Account not found")
			return
		}
		h.logger.Error("Failed to get account", "client", client, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapSnapshotToResponse(snapshot))
}

// parseClientParam reads the :client path parameter and answers 400 when it is not a uint16
func parseClientParam(c *gin.Context, logger *slog.Logger) (shared.ClientID, bool) {
	param := c.Param("client")
	client, err := shared.ParseClientID(param)
	if err != nil {
		logger.Warn("Invalid client ID", "client", param, "error", err)
		RespondBadRequest(c, "Invalid client ID")
		return 0, false
	}
	return client, true
}

// mapSnapshotToResponse maps an account snapshot to an account response DTO
func mapSnapshotToResponse(snapshot *account.Snapshot) AccountResponse {
	return AccountResponse{
		Client:     uint16(snapshot.Client),
		Available:  shared.FormatValue(snapshot.Available),
		Held:       shared.FormatValue(snapshot.Held),
		Total:      shared.FormatValue(snapshot.Total),
		Locked:     snapshot.Locked,
		RunID:      snapshot.RunID.String(),
		ExportedAt: snapshot.ExportedAt.UTC().Format(time.RFC3339),
	}
}
