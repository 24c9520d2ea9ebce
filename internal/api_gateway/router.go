package api_gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/payments-ledger/internal/api_gateway/handler"
	"github.com/payments-ledger/internal/api_gateway/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	accountHandler *handler.AccountHandler,
	outcomeHandler *handler.OutcomeHandler,
	transactionHandler *handler.TransactionHandler,
) {
	// CorrelationID runs before Logger so the access log carries the request id
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Logger(logger))

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Exported snapshots and the outcome audit
		accounts := v1.Group("/accounts")
		{
			accounts.GET("", accountHandler.List)
			accounts.GET("/:client", accountHandler.GetByClient)
			accounts.GET("/:client/outcomes", outcomeHandler.GetByClient)
		}

		// Transaction intake
		v1.POST("/transactions", transactionHandler.Submit)
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
