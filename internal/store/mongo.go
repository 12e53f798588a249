package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hiring-pipeline/internal/config"
	"hiring-pipeline/internal/logging"
	"hiring-pipeline/pkg/models"
	"hiring-pipeline/pkg/utils"
)

const applicationsCollection = "applications"

// MongoStore implements ApplicationStore backed by a MongoDB collection
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     logging.Logger
}

// NewMongoStore connects to MongoDB and prepares the applications collection
func NewMongoStore(ctx context.Context, cfg *config.Config) (*MongoStore, error) {
	logger := logging.GetGlobalLogger()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	store := &MongoStore{
		client:     client,
		collection: client.Database(cfg.Mongo.Database).Collection(applicationsCollection),
		logger:     logger,
	}

	if err := store.ensureIndexes(connectCtx); err != nil {
		return nil, err
	}

	logger.Info("Connected to MongoDB", map[string]interface{}{
		"database":   cfg.Mongo.Database,
		"collection": applicationsCollection,
	})

	return store, nil
}

// ensureIndexes creates the indexes the lookup paths depend on
func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "role", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "scrapeRunId", Value: 1}}},
	}

	if _, err := s.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create persists a new application record, assigning its id and timestamps
func (s *MongoStore) Create(ctx context.Context, app *models.Application) error {
	if app.ID == "" {
		app.ID = utils.GenerateRequestID()
	}

	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now

	if _, err := s.collection.InsertOne(ctx, app); err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

// GetByID retrieves an application by its id
func (s *MongoStore) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&app)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch application %s: %w", id, err)
	}
	return &app, nil
}

// FindActiveByEmailRole finds an in-flight application for the (email, role)
// pair
func (s *MongoStore) FindActiveByEmailRole(ctx context.Context, email, role string) (*models.Application, error) {
	filter := bson.M{
		"email":  email,
		"role":   role,
		"status": bson.M{"$in": models.InFlightStatuses},
	}

	var app models.Application
	err := s.collection.FindOne(ctx, filter).Decode(&app)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	return &app, nil
}

// Update persists the current state of an application record
func (s *MongoStore) Update(ctx context.Context, app *models.Application) error {
	app.UpdatedAt = time.Now().UTC()

	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": app.ID}, app)
	if err != nil {
		return fmt.Errorf("failed to update application %s: %w", app.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns the most recent applications, newest first
func (s *MongoStore) List(ctx context.Context, limit int64) ([]*models.Application, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer cursor.Close(ctx)

	var apps []*models.Application
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("failed to decode applications: %w", err)
	}
	return apps, nil
}

// Close disconnects from MongoDB
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
