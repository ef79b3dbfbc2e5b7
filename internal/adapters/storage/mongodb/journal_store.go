// Package mongodb implements the journal store on MongoDB.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/domain"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/ports"
)

// Config contains configuration for the journal store.
type Config struct {
	// URI is the MongoDB connection string.
	URI string

	// Database and Collection locate the journal entries.
	Database   string
	Collection string

	// Timeout bounds connection establishment and the health ping.
	Timeout time.Duration

	// Logger is the structured logger.
	Logger *slog.Logger
}

// JournalStore implements ports.JournalStore on a MongoDB collection.
type JournalStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	timeout    time.Duration
	logger     *slog.Logger
}

// journalDoc is the stored document shape. Never exposed outside this
// package; translation to domain.JournalEntry happens at the boundary.
type journalDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Quote   string             `bson:"quote"`
	Author  string             `bson:"author"`
	SavedAt time.Time          `bson:"savedAt"`
}

// New connects to MongoDB and returns a journal store.
// The connection is verified with a ping before returning.
func New(ctx context.Context, cfg Config) (*JournalStore, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	logger.Info("connected to journal store",
		slog.String("database", cfg.Database),
		slog.String("collection", cfg.Collection),
	)

	return &JournalStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		timeout:    cfg.Timeout,
		logger:     logger.With(slog.String("component", "mongodb.JournalStore")),
	}, nil
}

// List returns journal entries sorted by savedAt descending, id breaking
// ties. An optional cursor position narrows the listing to entries older
// than the one named. Implements ports.JournalStore.
func (s *JournalStore) List(ctx context.Context, q ports.JournalQuery) ([]domain.JournalEntry, error) {
	filter := bson.M{}

	if q.AfterID != "" && q.AfterSavedAt != "" {
		afterID, err := primitive.ObjectIDFromHex(q.AfterID)
		if err != nil {
			return nil, domain.NewValidationError("cursor", "invalid entry identifier")
		}

		afterSavedAt, err := time.Parse(time.RFC3339Nano, q.AfterSavedAt)
		if err != nil {
			return nil, domain.NewValidationError("cursor", "invalid savedAt position")
		}

		filter["$or"] = bson.A{
			bson.M{"savedAt": bson.M{"$lt": afterSavedAt}},
			bson.M{"savedAt": afterSavedAt, "_id": bson.M{"$lt": afterID}},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "savedAt", Value: -1}, {Key: "_id", Value: -1}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, domain.NewUnavailableError("journal-store", fmt.Sprintf("listing entries: %v", err))
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []journalDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domain.NewUnavailableError("journal-store", fmt.Sprintf("reading entries: %v", err))
	}

	entries := make([]domain.JournalEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, toDomain(doc))
	}

	return entries, nil
}

// Save persists a quote, stamping savedAt server-side. A client-supplied
// timestamp never reaches this layer. Implements ports.JournalStore.
func (s *JournalStore) Save(ctx context.Context, quote domain.Quote) (*domain.JournalEntry, error) {
	doc := journalDoc{
		Quote:   quote.Text,
		Author:  quote.Author,
		SavedAt: time.Now().UTC(),
	}

	result, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, domain.NewUnavailableError("journal-store", fmt.Sprintf("saving entry: %v", err))
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, domain.NewUnavailableError("journal-store", "unexpected inserted id type")
	}

	doc.ID = insertedID
	entry := toDomain(doc)

	s.logger.DebugContext(ctx, "journal entry saved", slog.String("entry_id", entry.ID))

	return &entry, nil
}

// Remove deletes the entry with the given identifier. The identifier is
// assumed syntactically valid; handlers reject malformed ids before the
// store is touched. Implements ports.JournalStore.
func (s *JournalStore) Remove(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NewValidationError("id", "invalid entry identifier")
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return domain.NewUnavailableError("journal-store", fmt.Sprintf("deleting entry: %v", err))
	}

	if result.DeletedCount == 0 {
		return domain.NewNotFoundError("journal entry", id)
	}

	s.logger.DebugContext(ctx, "journal entry removed", slog.String("entry_id", id))

	return nil
}

// Disconnect closes the MongoDB connection.
func (s *JournalStore) Disconnect(ctx context.Context) error {
	err := s.client.Disconnect(ctx)
	if err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("disconnecting from mongodb: %w", err)
	}

	return nil
}

// Name returns the health check name for this store.
// Implements ports.HealthChecker.
func (s *JournalStore) Name() string {
	return "journal-store"
}

// Check pings the primary. Implements ports.HealthChecker.
func (s *JournalStore) Check(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.client.Ping(pingCtx, readpref.Primary())
}

// toDomain translates the stored document to a domain entry.
func toDomain(doc journalDoc) domain.JournalEntry {
	return domain.JournalEntry{
		ID:      doc.ID.Hex(),
		Quote:   domain.Quote{Text: doc.Quote, Author: doc.Author},
		SavedAt: doc.SavedAt,
	}
}
