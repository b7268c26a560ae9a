// Package data manages the MongoDB connection backing the task store.
package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ncobase/taskd/config"
	"github.com/ncobase/taskd/data/repository"
	"github.com/ncobase/taskd/logging/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultConnectTimeout = 10 * time.Second

// Data encapsulates all data layer dependencies.
type Data struct {
	client   *mongo.Client
	TaskRepo repository.TaskRepository
}

// New creates a new Data instance with MongoDB connection.
func New(ctx context.Context, cfg *config.MongoDB, logger *logger.Logger) (*Data, error) {
	if cfg == nil || cfg.URI == "" {
		return nil, errors.New("mongodb: uri is required")
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info(ctx, "Connected to MongoDB successfully", "database", cfg.Database, "collection", cfg.Collection)

	collection := client.Database(cfg.Database).Collection(cfg.Collection)

	if err := repository.EnsureIndexes(ctx, collection); err != nil {
		logger.Warn(ctx, "failed to create index on id", "error", err)
	}

	return &Data{
		client:   client,
		TaskRepo: repository.NewTaskRepository(collection, logger),
	}, nil
}

// Close closes the MongoDB connection.
func (d *Data) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return d.client.Disconnect(ctx)
}

// Ping checks that the primary is reachable.
func (d *Data) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}
