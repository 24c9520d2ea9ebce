package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/payments-ledger/internal/api_gateway"
	"github.com/payments-ledger/internal/api_gateway/service"
	"github.com/payments-ledger/internal/config"
	"github.com/payments-ledger/internal/data/mongo"
	"github.com/payments-ledger/internal/data/postgres"
	"github.com/payments-ledger/internal/domain/ledger"
	"github.com/payments-ledger/internal/logger"
	"github.com/payments-ledger/internal/platform/messaging/producers"
	"github.com/payments-ledger/internal/platform/persistence"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("api_gateway")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Snapshots are the gateway's main read model, so Postgres is mandatory
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	// The outcome audit is optional; without it the outcomes endpoint answers 503
	var mongoDB *persistence.MongoDB
	var outcomeRepo ledger.OutcomeRepository
	if cfg.MongoDB.Enabled {
		mongoDB, err = persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
		if err != nil {
			log.Error("Failed to initialize MongoDB", "error", err)
			postgresDB.Close()
			os.Exit(1)
		}
		outcomeRepo = mongo.NewOutcomeRepository(log, mongoDB.Database())
	}

	// Publishes accepted records to the topic the processor consumes
	kafkaProducer, err := producers.NewTransactionRecordProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize API Gateway Kafka producer", "error", err)
		postgresDB.Close()
		os.Exit(1)
	}

	// Initialize repositories
	accountRepo := postgres.NewAccountRepository(log, postgresDB)

	// Initialize services
	accountService := service.NewAccountService(accountRepo)
	outcomeService := service.NewOutcomeService(outcomeRepo)
	transactionService := service.NewTransactionService(log, kafkaProducer)

	// Initialize REST server
	server := api_gateway.NewServer(log, cfg, accountService, outcomeService, transactionService)
	log.Info("REST server initialized", "outcome_audit", cfg.MongoDB.Enabled)

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence; stop intake before closing its dependencies
	log.Info("Starting graceful shutdown...")

	var shutdownErr error
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
		shutdownErr = err
	}

	if err := kafkaProducer.Close(); err != nil {
		log.Error("Error closing Kafka producer", "error", err)
		shutdownErr = err
	}

	postgresDB.Close()

	if mongoDB != nil {
		if err := mongoDB.Close(shutdownCtx); err != nil {
			log.Error("Error closing MongoDB connection", "error", err)
			shutdownErr = err
		}
	}

	// Final status
	if serverErr != nil || shutdownErr != nil {
		log.Error("Server shutdown completed with errors")
		os.Exit(1)
	}
	log.Info("Server shutdown completed successfully")
}
