package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/payments-ledger/internal/api_gateway/service"
	"github.com/payments-ledger/internal/domain/shared"
)

// TransactionHandler accepts transactions for the processor
type TransactionHandler struct {
	transactionService service.TransactionService
	logger             *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// Submit validates a transaction record and queues it, answering 202 once published.
// Whether the ledger applies it is only known after processing.
func (h *TransactionHandler) Submit(c *gin.Context) {
	var req SubmitTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tx, err := h.transactionService.SubmitTransaction(c.Request.Context(), shared.TransactionRecord{
		Type:   req.Type,
		Client: req.Client,
		Tx:     req.Tx,
		Amount: req.Amount,
	})
	if err != nil {
		if errors.Is(err, shared.ErrInvalidRecord) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to submit transaction", "error", err)
		RespondInternalError(c)
		return
	}

	response := SubmitTransactionResponse{
		Type:   string(tx.Type()),
		Client: uint16(tx.ClientID()),
		Tx:     uint32(tx.TransactionID()),
		Status: "QUEUED",
	}
	if amount, ok := shared.AmountOf(tx); ok {
		response.Amount = amount.String()
	}
	RespondAccepted(c, response)
}
