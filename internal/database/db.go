package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/blog-api/internal/config"
)

// BlogCollection is the name of the collection holding blog posts
const BlogCollection = "blogs"

// DB wraps the MongoDB client with additional functionality
type DB struct {
	client   *mongo.Client
	database *mongo.Database
	log      zerolog.Logger
}

// New creates a new MongoDB connection and verifies it with a ping
func New(cfg *config.DatabaseConfig, log zerolog.Logger) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Test connection with timeout
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	wrapper := &DB{
		client:   client,
		database: client.Database(cfg.Name),
		log:      log.With().Str("component", "database").Logger(),
	}

	wrapper.log.Info().
		Str("database", cfg.Name).
		Msg("MongoDB connection established")

	return wrapper, nil
}

// Collection returns a handle to the named collection
func (db *DB) Collection(name string) *mongo.Collection {
	return db.database.Collection(name)
}

// EnsureIndexes creates the indexes the service relies on. The unique title
// index is what actually enforces title uniqueness under concurrent creates;
// the service-level check only exists for a friendlier error message.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	db.log.Info().Msg("Ensuring MongoDB indexes")

	_, err := db.Collection(BlogCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "title", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_title"),
	})
	if err != nil {
		return fmt.Errorf("failed to create title index: %w", err)
	}

	db.log.Info().Msg("Indexes ensured")
	return nil
}

// HealthCheck verifies the database connection is healthy
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the MongoDB client
func (db *DB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.client.Disconnect(ctx)
}
