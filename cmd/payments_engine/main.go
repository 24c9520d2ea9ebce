package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/payments-ledger/internal/config"
	"github.com/payments-ledger/internal/data/mongo"
	"github.com/payments-ledger/internal/data/postgres"
	"github.com/payments-ledger/internal/domain/ledger"
	"github.com/payments-ledger/internal/logger"
	"github.com/payments-ledger/internal/platform/csvio"
	"github.com/payments-ledger/internal/platform/messaging/producers"
	"github.com/payments-ledger/internal/platform/persistence"
	"github.com/payments-ledger/internal/transaction_processor/components"
	"github.com/payments-ledger/internal/transaction_processor/pipeline"
	"github.com/payments-ledger/internal/transaction_processor/service"
)

func main() {
	os.Exit(run(os.Args, os.Stdout))
}

// run processes the CSV named by args[1] and writes the account report to stdout.
// It returns the process exit code.
func run(args []string, stdout io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <transactions.csv>\n", filepath.Base(args[0]))
		return 1
	}

	cfg, err := config.LoadConfig("payments_engine")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	runID := uuid.New()
	log := logger.NewLogger(cfg).With("run_id", runID)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	input, err := os.Open(args[1])
	if err != nil {
		log.Error("Failed to open input file", "path", args[1], "error", err)
		return 1
	}
	defer input.Close()

	var outcomeRepo ledger.OutcomeRepository
	if cfg.MongoDB.Enabled {
		mongoDB, err := persistence.NewMongoDB(ctx, log, &cfg.MongoDB)
		if err != nil {
			log.Error("Failed to initialize MongoDB", "error", err)
			return 1
		}
		defer closeMongo(mongoDB, log)

		if err := mongo.EnsureOutcomeIndexes(ctx, mongoDB.Database()); err != nil {
			log.Warn("Failed to ensure outcome indexes", "error", err)
		}
		outcomeRepo = mongo.NewOutcomeRepository(log, mongoDB.Database())
	}

	var exporter service.SnapshotExporter
	if cfg.Postgres.Enabled {
		postgresDB, err := persistence.NewPostgresDB(ctx, log, &cfg.Postgres)
		if err != nil {
			log.Error("Failed to initialize PostgreSQL", "error", err)
			return 1
		}
		defer postgresDB.Close()

		accountRepo := postgres.NewAccountRepository(log, postgresDB)
		exporter = components.NewSnapshotExporter(postgresDB, accountRepo, runID, log.With("component", "snapshot_exporter"))
	}

	var dlq producers.DeadLetterPublisher
	dlqProducer, err := producers.NewDLQProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize DLQ Kafka producer", "error", err)
		return 1
	}
	if dlqProducer != nil {
		dlq = dlqProducer
		defer dlqProducer.Close()
	}

	recorder := components.CreateOutcomeRecorder(cfg, outcomeRepo, runID, log)
	processingService := components.CreateProcessingService(cfg, recorder, log)
	defer processingService.Shutdown()

	p := pipeline.New(processingService, recorder, exporter, dlq, log)

	log.Info("Processing transactions", "path", args[1], "mode", cfg.Processing.Mode)
	if err := p.ProcessCSV(ctx, input); err != nil {
		log.Error("Processing aborted", "error", err)
		return 1
	}

	table, err := p.Finish(ctx)
	if err != nil {
		log.Error("Failed to finish processing", "error", err)
		return 1
	}

	if err := csvio.WriteAccounts(stdout, table.Accounts()); err != nil {
		log.Error("Failed to write account report", "error", err)
		return 1
	}

	if err := p.Persist(ctx, table); err != nil {
		log.Error("Failed to persist run results", "error", err)
		return 1
	}

	p.LogSummary(table)
	return 0
}

func closeMongo(db *persistence.MongoDB, log *slog.Logger) {
	if err := db.Close(context.Background()); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}
}
