package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/portfolio-api/internal/config"
)

// Collection names used by the mongo content store
const (
	CollectionProjects = "projects"
	CollectionSkills   = "skills"
	CollectionBlogs    = "blogs"
)

// Mongo wraps a connected client and the content database
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
	log    zerolog.Logger
}

// NewMongo connects to MongoDB and verifies the connection with a ping
func NewMongo(cfg *config.MongoConfig, log zerolog.Logger) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	m := &Mongo{
		Client: client,
		DB:     client.Database(cfg.Database),
		log:    log.With().Str("component", "database").Str("driver", config.DriverMongo).Logger(),
	}

	m.log.Info().
		Str("database", cfg.Database).
		Msg("MongoDB connection established")

	return m, nil
}

// EnsureIndexes creates the unique and sort indexes the content store relies on.
// It plays the role migrations play for postgres and is safe to run repeatedly.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		CollectionProjects: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_name")},
			{Keys: bson.D{{Key: "isPublished", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		CollectionBlogs: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_slug")},
			{Keys: bson.D{{Key: "isPublished", Value: 1}, {Key: "publishedAt", Value: -1}}},
			{Keys: bson.D{{Key: "updatedAt", Value: -1}}},
		},
	}

	for collection, models := range specs {
		names, err := m.DB.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
		m.log.Info().Str("collection", collection).Strs("indexes", names).Msg("Indexes ensured")
	}
	return nil
}

// HealthCheck verifies the server is reachable
func (m *Mongo) HealthCheck(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
