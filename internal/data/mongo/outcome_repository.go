package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/payments-ledger/internal/domain/ledger"
	"github.com/payments-ledger/internal/domain/shared"
)

const (
	// OutcomeCollectionName is the name of the outcome audit collection in MongoDB
	OutcomeCollectionName = "transaction_outcomes"
)

// EnsureOutcomeIndexes creates the index backing per-client outcome queries
func EnsureOutcomeIndexes(ctx context.Context, db *mongo.Database) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "client", Value: 1}, {Key: "processed_at", Value: -1}},
		Options: options.Index().SetName("client_processed_at"),
	}
	if _, err := db.Collection(OutcomeCollectionName).Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create outcome index: %w", err)
	}
	return nil
}

// OutcomeRepository implements the ledger.OutcomeRepository interface for MongoDB
type OutcomeRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewOutcomeRepository creates a new MongoDB outcome repository
func NewOutcomeRepository(logger *slog.Logger, db *mongo.Database) ledger.OutcomeRepository {
	return &OutcomeRepository{
		db:     db,
		logger: logger,
	}
}

// InsertMany stores a batch of outcome records. Order is not significant; each
// record carries its own processing time.
func (r *OutcomeRepository) InsertMany(ctx context.Context, records []*ledger.OutcomeRecord) error {
	if len(records) == 0 {
		return nil
	}
	collection := r.db.Collection(OutcomeCollectionName)

	docs := make([]interface{}, len(records))
	for i, record := range records {
		docs[i] = record
	}

	_, err := collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		r.logger.Error("Failed to insert outcome records", "count", len(records), "error", err)
		return fmt.Errorf("failed to insert outcome records: %w", err)
	}

	return nil
}

// GetByClient retrieves paginated outcomes for a client, newest first
func (r *OutcomeRepository) GetByClient(ctx context.Context, client shared.ClientID, limit, offset int) ([]*ledger.OutcomeRecord, error) {
	collection := r.db.Collection(OutcomeCollectionName)

	filter := bson.M{"client": client}
	opts := options.Find().
		SetSort(bson.D{{Key: "processed_at", Value: -1}, {Key: "tx", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to get outcome records", "client", client, "error", err)
		return nil, fmt.Errorf("failed to get outcome records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*ledger.OutcomeRecord
	if err := cursor.All(ctx, &records); err != nil {
		r.logger.Error("Failed to decode outcome records", "client", client, "error", err)
		return nil, fmt.Errorf("failed to decode outcome records: %w", err)
	}

	return records, nil
}

// CountByClient counts the outcomes recorded for a client
func (r *OutcomeRepository) CountByClient(ctx context.Context, client shared.ClientID) (int64, error) {
	collection := r.db.Collection(OutcomeCollectionName)

	count, err := collection.CountDocuments(ctx, bson.M{"client": client})
	if err != nil {
		r.logger.Error("Failed to count outcome records", "client", client, "error", err)
		return 0, fmt.Errorf("failed to count outcome records: %w", err)
	}

	return count, nil
}
