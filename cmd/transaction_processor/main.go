package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/payments-ledger/internal/config"
	"github.com/payments-ledger/internal/data/mongo"
	"github.com/payments-ledger/internal/data/postgres"
	"github.com/payments-ledger/internal/domain/ledger"
	"github.com/payments-ledger/internal/logger"
	"github.com/payments-ledger/internal/platform/messaging/consumers"
	"github.com/payments-ledger/internal/platform/messaging/producers"
	"github.com/payments-ledger/internal/platform/persistence"
	"github.com/payments-ledger/internal/transaction_processor/components"
	"github.com/payments-ledger/internal/transaction_processor/consumer"
	"github.com/payments-ledger/internal/transaction_processor/pipeline"
)

func main() {
	// Cancelled on SIGINT/SIGTERM; the consumer also stops on its own once the topic goes idle
	appCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	// Initialize configuration
	cfg, err := config.LoadConfig("transaction_processor")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	runID := uuid.New()
	log := logger.NewLogger(cfg).With("run_id", runID)

	log.Info("Starting Transaction Processor",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
		"mode", cfg.Processing.Mode,
	)

	// The snapshot export is this binary's only output, so Postgres is mandatory
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	var mongoDB *persistence.MongoDB
	var outcomeRepo ledger.OutcomeRepository
	if cfg.MongoDB.Enabled {
		mongoDB, err = persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
		if err != nil {
			log.Error("Failed to initialize MongoDB", "error", err)
			postgresDB.Close()
			os.Exit(1)
		}
		if err := mongo.EnsureOutcomeIndexes(appCtx, mongoDB.Database()); err != nil {
			log.Warn("Failed to ensure outcome indexes", "error", err)
		}
		outcomeRepo = mongo.NewOutcomeRepository(log, mongoDB.Database())
	}

	// Initialize repositories and sinks
	accountRepo := postgres.NewAccountRepository(log, postgresDB)
	exporter := components.NewSnapshotExporter(postgresDB, accountRepo, runID, log.With("component", "snapshot_exporter"))
	recorder := components.CreateOutcomeRecorder(cfg, outcomeRepo, runID, log)

	// Initialize Kafka DLQ producer; nil when KAFKA_DLQ_TOPIC is empty
	var dlq producers.DeadLetterPublisher
	dlqProducer, err := producers.NewDLQProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize DLQ Kafka producer", "error", err)
		os.Exit(1)
	}
	if dlqProducer != nil {
		dlq = dlqProducer
	}

	processingService := components.CreateProcessingService(cfg, recorder, log)
	p := pipeline.New(processingService, recorder, exporter, dlq, log)

	transactionEventHandler := consumer.NewTransactionEventHandler(
		log,
		processingService,
		components.NewTransactionValidator(log),
		dlq,
	)

	kafkaConsumer := consumers.NewKafkaConsumer(appCtx, log, &cfg.Kafka, runID)

	// Blocks until the topic is idle or a shutdown signal arrives
	if err := kafkaConsumer.Consume(appCtx, transactionEventHandler.HandleMessage); err != nil {
		log.Error("Kafka consumer error", "error", err)
	}

	// Finishing must not be interrupted by the signal that stopped consumption
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	exitCode := 0
	table, err := p.Finish(shutdownCtx)
	if err != nil {
		log.Error("Failed to finish processing", "error", err)
		exitCode = 1
	} else if err := p.Persist(shutdownCtx, table); err != nil {
		log.Error("Failed to persist run results", "error", err)
		exitCode = 1
	}
	p.LogSummary(table)

	// Graceful shutdown sequence
	processingService.Shutdown()

	if err := kafkaConsumer.Close(); err != nil {
		log.Error("Error closing Kafka consumer", "error", err)
	}
	if dlqProducer != nil {
		if err := dlqProducer.Close(); err != nil {
			log.Error("Error closing DLQ Kafka producer", "error", err)
		}
	}

	postgresDB.Close()
	if mongoDB != nil {
		if err := mongoDB.Close(shutdownCtx); err != nil {
			log.Error("Error closing MongoDB connection", "error", err)
		}
	}

	if exitCode != 0 {
		log.Error("Transaction Processor shutdown completed with errors")
		os.Exit(exitCode)
	}
	log.Info("Transaction Processor shutdown completed successfully")
}
