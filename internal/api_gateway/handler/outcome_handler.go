package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/payments-ledger/internal/api_gateway/service"
	"github.com/payments-ledger/internal/domain/ledger"
)

// OutcomeHandler serves the per-client outcome audit trail
type OutcomeHandler struct {
	outcomeService service.OutcomeService
	logger         *slog.Logger
}

// NewOutcomeHandler creates a new outcome handler
func NewOutcomeHandler(logger *slog.Logger, outcomeService service.OutcomeService) *OutcomeHandler {
	return &OutcomeHandler{
		outcomeService: outcomeService,
		logger:         logger,
	}
}

// GetByClient returns a page of outcomes for a client, newest first
func (h *OutcomeHandler) GetByClient(c *gin.Context) {
	client, ok := parseClientParam(c, h.logger)
	if !ok {
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		h.logger.Warn("Invalid pagination parameters", "error", err)
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	records, total, err := h.outcomeService.GetOutcomesByClient(c.Request.Context(), client, pagination.Limit, pagination.Offset)
	if err != nil {
		if errors.Is(err, service.ErrOutcomesUnavailable) {
			RespondServiceUnavailable(c, "Outcome audit is not enabled")
			return
		}
		h.logger.Error("Failed to get outcomes", "client", client, "error", err)
		RespondInternalError(c)
		return
	}

	outcomes := make([]OutcomeResponse, 0, len(records))
	for _, record := range records {
		outcomes = append(outcomes, mapOutcomeToResponse(record))
	}

	RespondWithPaginatedData(c, http.StatusOK, outcomes, pagination.Limit, pagination.Offset, total)
}

// mapOutcomeToResponse maps an outcome record to an outcome response DTO
func mapOutcomeToResponse(record *ledger.OutcomeRecord) OutcomeResponse {
	return OutcomeResponse{
		RunID:       record.RunID.String(),
		Type:        string(record.Type),
		Client:      uint16(record.Client),
		Tx:          uint32(record.Tx),
		Amount:      record.Amount,
		Applied:     record.Applied,
		Reason:      string(record.Reason),
		ProcessedAt: record.ProcessedAt.UTC().Format(time.RFC3339Nano),
	}
}
